package dto

// ErrorResponse cuerpo de error HTTP. Messages lleva cada mensaje de validación
// del backend por separado cuando hay más de uno.
type ErrorResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Messages []string `json:"messages,omitempty"`
}

// NoticeLevel severidad de un aviso mostrado al usuario.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
	NoticeConfirm NoticeLevel = "confirm"
)

// Notice aviso tipo toast que devuelven los controladores de página.
type Notice struct {
	Level    NoticeLevel `json:"level"`
	Message  string      `json:"message"`
	Messages []string    `json:"messages,omitempty"`
}

// Succeeded indica si el aviso corresponde a una operación exitosa.
func (n Notice) Succeeded() bool { return n.Level == NoticeSuccess }

// SuccessNotice aviso de éxito.
func SuccessNotice(msg string) Notice {
	return Notice{Level: NoticeSuccess, Message: msg}
}

// ErrorNotice aviso de error con uno o más mensajes.
func ErrorNotice(msgs ...string) Notice {
	n := Notice{Level: NoticeError}
	if len(msgs) > 0 {
		n.Message = msgs[0]
	}
	if len(msgs) > 1 {
		n.Messages = msgs
	}
	return n
}
