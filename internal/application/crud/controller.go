// Package crud implementa un controlador de página genérico (listado con búsqueda,
// formulario de alta/edición y baja con confirmación) parametrizado por un Schema.
package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/domain"
)

// Lister fuente de datos mínima de una página.
type Lister[T any] interface {
	Resource() string
	List(ctx context.Context, params url.Values) ([]T, error)
}

// Creator servicio con alta.
type Creator[T, C any] interface {
	Create(ctx context.Context, in C) (T, error)
}

// Updater servicio con actualización.
type Updater[T, U any] interface {
	Update(ctx context.Context, id string, in U) (T, error)
}

// Deleter servicio con baja.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Field campo de formulario.
type Field struct {
	Name     string `json:"name"` // nombre JSON del payload
	Label    string `json:"label"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
	// Message reemplaza el texto por defecto cuando falta un campo requerido.
	Message string `json:"-"`
}

// Column columna del listado.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Messages textos de la página.
type Messages struct {
	Created       string
	Updated       string
	Deleted       string
	CreateFailed  string
	UpdateFailed  string
	DeleteFailed  string
	LoadFailed    string
	ConfirmDelete func(item any) string // recibe el ítem (o nil si no está en el listado)
}

// Schema describe una página CRUD.
type Schema[T, C, U any] struct {
	Resource     string
	Title        string
	ID           func(T) string
	SearchFields func(T) []string
	Columns      []Column
	Fields       []Field
	LockedFields []string // deshabilitados en edición

	// CheckCreate/CheckUpdate validaciones adicionales; devuelven mensajes para el usuario.
	// CheckUpdate recibe el registro vigente; si no se puede cargar la edición se rechaza.
	CheckCreate func(ctx context.Context, in C) []string
	CheckUpdate func(ctx context.Context, current T, in U) []string
	// CheckDelete devuelve un mensaje si el ítem no se puede eliminar desde la página.
	// Con CheckDelete definido, un ítem que no se puede cargar no se elimina.
	CheckDelete func(ctx context.Context, item T) string

	Messages Messages
}

// PageView respuesta del listado.
type PageView[T any] struct {
	Title   string       `json:"title"`
	Status  query.Status `json:"status"`
	Columns []Column     `json:"columns,omitempty"`
	Items   []T          `json:"items"`
	Total   int          `json:"total"`
	Query   string       `json:"query,omitempty"`
	Notice  *dto.Notice  `json:"notice,omitempty"`
}

// FormMode modo del formulario.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// Form formulario de alta o edición.
type Form[T any] struct {
	Title  string      `json:"title"`
	Mode   FormMode    `json:"mode"`
	ID     string      `json:"id,omitempty"`
	Fields []Field     `json:"fields"`
	Locked []string    `json:"locked,omitempty"`
	Values *T          `json:"values,omitempty"`
	Notice *dto.Notice `json:"notice,omitempty"`
}

// Controller controlador de página.
type Controller[T, C, U any] struct {
	svc      Lister[T]
	schema   Schema[T, C, U]
	validate *validator.Validate
	fields   map[string]Field
}

// New construye el controlador. validate nil usa NewValidator().
func New[T, C, U any](svc Lister[T], schema Schema[T, C, U], validate *validator.Validate) *Controller[T, C, U] {
	if validate == nil {
		validate = NewValidator()
	}
	if schema.Resource == "" {
		schema.Resource = svc.Resource()
	}
	fields := make(map[string]Field, len(schema.Fields))
	for _, f := range schema.Fields {
		fields[f.Name] = f
	}
	return &Controller[T, C, U]{svc: svc, schema: schema, validate: validate, fields: fields}
}

// NewValidator validator que reporta los campos por su nombre JSON.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Schema devuelve el schema de la página.
func (ctl *Controller[T, C, U]) Schema() Schema[T, C, U] { return ctl.schema }

// View listado filtrado por term sobre SearchFields.
func (ctl *Controller[T, C, U]) View(ctx context.Context, term string) PageView[T] {
	view := PageView[T]{Title: ctl.schema.Title, Columns: ctl.schema.Columns, Query: term, Items: []T{}}
	items, err := ctl.svc.List(ctx, nil)
	if err != nil {
		n := NoticeFromError(err, orDefault(ctl.schema.Messages.LoadFailed, "Error al cargar los datos"))
		view.Status = query.StatusError
		view.Notice = &n
		return view
	}
	view.Status = query.StatusSuccess
	for _, it := range items {
		if ctl.schema.SearchFields == nil || Matches(term, ctl.schema.SearchFields(it)...) {
			view.Items = append(view.Items, it)
		}
	}
	view.Total = len(view.Items)
	return view
}

// NewForm formulario vacío en modo alta.
func (ctl *Controller[T, C, U]) NewForm() Form[T] {
	return Form[T]{Title: ctl.schema.Title, Mode: ModeCreate, Fields: ctl.schema.Fields}
}

// EditForm formulario en modo edición precargado con la entidad id.
func (ctl *Controller[T, C, U]) EditForm(ctx context.Context, id string) (Form[T], error) {
	item, err := ctl.find(ctx, id)
	if err != nil {
		return Form[T]{}, err
	}
	return Form[T]{
		Title:  ctl.schema.Title,
		Mode:   ModeEdit,
		ID:     id,
		Fields: ctl.schema.Fields,
		Locked: ctl.schema.LockedFields,
		Values: &item,
	}, nil
}

func (ctl *Controller[T, C, U]) find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := ctl.svc.List(ctx, nil)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if ctl.schema.ID != nil && ctl.schema.ID(it) == id {
			return it, nil
		}
	}
	return zero, fmt.Errorf("%s %s: %w", ctl.schema.Resource, id, domain.ErrNotFound)
}

// Submit decodifica body como payload de alta (id vacío) o de edición y lo envía.
func (ctl *Controller[T, C, U]) Submit(ctx context.Context, id string, body []byte) dto.Notice {
	if id == "" {
		var in C
		if err := json.Unmarshal(body, &in); err != nil {
			return dto.ErrorNotice("Datos inválidos")
		}
		return ctl.Create(ctx, in)
	}
	var in U
	if err := json.Unmarshal(body, &in); err != nil {
		return dto.ErrorNotice("Datos inválidos")
	}
	return ctl.Update(ctx, id, in)
}

// Create valida y crea.
func (ctl *Controller[T, C, U]) Create(ctx context.Context, in C) dto.Notice {
	svc, ok := ctl.svc.(Creator[T, C])
	if !ok {
		return dto.ErrorNotice("Operación no disponible")
	}
	if msgs := ctl.check(in); len(msgs) > 0 {
		return dto.ErrorNotice(msgs...)
	}
	if ctl.schema.CheckCreate != nil {
		if msgs := ctl.schema.CheckCreate(ctx, in); len(msgs) > 0 {
			return dto.ErrorNotice(msgs...)
		}
	}
	if _, err := svc.Create(ctx, in); err != nil {
		return NoticeFromError(err, orDefault(ctl.schema.Messages.CreateFailed, "Error al crear"))
	}
	return dto.SuccessNotice(orDefault(ctl.schema.Messages.Created, "Creado exitosamente"))
}

// Update valida y actualiza.
func (ctl *Controller[T, C, U]) Update(ctx context.Context, id string, in U) dto.Notice {
	svc, ok := ctl.svc.(Updater[T, U])
	if !ok {
		return dto.ErrorNotice("Operación no disponible")
	}
	if msgs := ctl.check(in); len(msgs) > 0 {
		return dto.ErrorNotice(msgs...)
	}
	if ctl.schema.CheckUpdate != nil {
		current, err := ctl.find(ctx, id)
		if err != nil {
			return NoticeFromError(err, orDefault(ctl.schema.Messages.UpdateFailed, "Error al actualizar"))
		}
		if msgs := ctl.schema.CheckUpdate(ctx, current, in); len(msgs) > 0 {
			return dto.ErrorNotice(msgs...)
		}
	}
	if _, err := svc.Update(ctx, id, in); err != nil {
		return NoticeFromError(err, orDefault(ctl.schema.Messages.UpdateFailed, "Error al actualizar"))
	}
	return dto.SuccessNotice(orDefault(ctl.schema.Messages.Updated, "Actualizado exitosamente"))
}

// Delete sin confirmación devuelve el aviso de confirmación y no llama al backend.
func (ctl *Controller[T, C, U]) Delete(ctx context.Context, id string, confirmed bool) dto.Notice {
	svc, ok := ctl.svc.(Deleter)
	if !ok {
		return dto.ErrorNotice("Operación no disponible")
	}
	var item *T
	found, err := ctl.find(ctx, id)
	switch {
	case err == nil:
		item = &found
	case ctl.schema.CheckDelete != nil:
		return NoticeFromError(err, orDefault(ctl.schema.Messages.DeleteFailed, "Error al eliminar"))
	}
	if item != nil && ctl.schema.CheckDelete != nil {
		if msg := ctl.schema.CheckDelete(ctx, *item); msg != "" {
			return dto.Notice{Level: dto.NoticeWarning, Message: msg}
		}
	}
	if !confirmed {
		return dto.Notice{Level: dto.NoticeConfirm, Message: ctl.confirmPrompt(item)}
	}
	if err := svc.Delete(ctx, id); err != nil {
		return NoticeFromError(err, orDefault(ctl.schema.Messages.DeleteFailed, "Error al eliminar"))
	}
	return dto.SuccessNotice(orDefault(ctl.schema.Messages.Deleted, "Eliminado exitosamente"))
}

func (ctl *Controller[T, C, U]) confirmPrompt(item *T) string {
	if ctl.schema.Messages.ConfirmDelete == nil {
		return "¿Estás seguro de eliminar este registro?"
	}
	if item == nil {
		return ctl.schema.Messages.ConfirmDelete(nil)
	}
	return ctl.schema.Messages.ConfirmDelete(*item)
}

func (ctl *Controller[T, C, U]) check(in any) []string {
	return ValidateStruct(ctl.validate, in, ctl.fields)
}

// ValidateStruct corre las etiquetas validate de in y arma un mensaje por campo,
// usando las etiquetas de fields (por nombre JSON) cuando existen.
func ValidateStruct(v *validator.Validate, in any, fields map[string]Field) []string {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe, fields[fe.Field()]))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError, f Field) string {
	label := f.Label
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		if f.Message != "" {
			return f.Message
		}
		return label + " es requerido"
	case "email":
		return label + " debe ser un correo válido"
	case "gt":
		return label + " debe ser mayor a " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return label + " debe tener al menos " + fe.Param() + " caracteres"
		}
		return label + " debe ser al menos " + fe.Param()
	case "max":
		return label + " excede el máximo de " + fe.Param()
	case "oneof":
		return label + " debe ser uno de: " + fe.Param()
	default:
		return label + " es inválido"
	}
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}
