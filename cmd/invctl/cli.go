package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	appanalytics "github.com/diego1198/inventory-frontend/internal/application/analytics"
	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	appsession "github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/api"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/session"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

const usage = `uso: invctl <comando> [flags]

comandos:
  login     --email --password     inicia sesión y guarda el token
  logout                           borra la sesión local
  whoami                           usuario de la sesión
  nav                              menú visible para el rol
  products  [--q término]          lista productos
  movement  --product --type IN|OUT --qty [--price] [--reason]
  report    [--date AAAA-MM-DD] [--year] [--month]
`

var loginFields = map[string]crud.Field{
	"email":    {Name: "email", Label: "--email"},
	"password": {Name: "password", Label: "--password"},
}

type cli struct {
	store     *session.FileStore
	auth      *resource.AuthService
	pages     *pages.Pages
	dashboard *appanalytics.DashboardUseCase
	table     *navigation.Table
	stdout    io.Writer
	stderr    io.Writer
}

func newCLI(baseURL string, timeout time.Duration, sessionFile string, log *logger.Logger) *cli {
	client := api.NewClient(baseURL, timeout, api.WithLogger(log.Component("api")))
	cache := query.New(query.WithLogger(log.Component("cache")))
	return &cli{
		store: session.NewFileStore(sessionFile),
		auth:  resource.NewAuthService(client, cache),
		pages: pages.New(pages.Services{
			Products:   resource.NewProductService(client, cache),
			Categories: resource.NewCategoryService(client, cache),
			Customers:  resource.NewCustomerService(client, cache),
			Users:      resource.NewUserService(client, cache),
			Inventory:  resource.NewInventoryService(client, cache),
			Sales:      resource.NewSaleService(client, cache),
		}, nil),
		dashboard: appanalytics.NewDashboardUseCase(resource.NewReportService(client, cache), time.Now),
		table:     navigation.DefaultTable(),
		stdout:    io.Discard,
		stderr:    io.Discard,
	}
}

// run ejecuta un comando y devuelve el código de salida.
func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return 2
	}
	cmd, rest := args[0], args[1:]

	if cmd == "login" {
		return c.exit(c.login(ctx, rest))
	}
	if cmd == "logout" {
		return c.exit(c.auth.Logout(ctx, c.store))
	}

	fn, known := c.commands()[cmd]
	if !known {
		fmt.Fprintf(c.stderr, "comando desconocido: %s\n\n%s", cmd, usage)
		return 2
	}

	// el resto de los comandos requiere sesión
	sess, ok := c.store.Get()
	if !ok {
		fmt.Fprintln(c.stderr, "sin sesión: ejecuta invctl login")
		return 1
	}
	return c.exit(fn(appsession.WithContext(ctx, *sess), sess.User, rest))
}

// command comando que corre con la sesión guardada.
type command func(ctx context.Context, user entity.User, args []string) error

func (c *cli) commands() map[string]command {
	return map[string]command{
		"whoami": func(_ context.Context, u entity.User, _ []string) error {
			return c.print(dto.MeResponse{User: u, RoleLabel: u.Role.Label()})
		},
		"nav": func(_ context.Context, u entity.User, _ []string) error {
			return c.print(c.table.VisibleItems(u.Role))
		},
		"products": func(ctx context.Context, _ entity.User, args []string) error {
			return c.products(ctx, args)
		},
		"movement": func(ctx context.Context, u entity.User, args []string) error {
			return c.movement(ctx, u.Role, args)
		},
		"report": func(ctx context.Context, _ entity.User, args []string) error {
			return c.report(ctx, args)
		},
	}
}

func (c *cli) exit(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(c.stderr, "error:", err)
	if errors.Is(err, domain.ErrUnauthorized) {
		// el backend rechazó el token: la sesión local ya no sirve
		_ = c.store.Clear()
	}
	return 1
}

func (c *cli) flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	email := fs.String("email", "", "correo del usuario")
	password := fs.String("password", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in := dto.LoginRequest{Email: *email, Password: *password}
	if msgs := crud.ValidateStruct(crud.NewValidator(), in, loginFields); len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "; "))
	}
	sess, err := c.auth.Login(ctx, c.store, in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return errors.New("credenciales inválidas")
		}
		return err
	}
	fmt.Fprintf(c.stdout, "sesión iniciada: %s (%s)\n", sess.User.Email, sess.User.Role.Label())
	return nil
}

func (c *cli) products(ctx context.Context, args []string) error {
	fs := c.flags("products")
	term := fs.String("q", "", "término de búsqueda")
	if err := fs.Parse(args); err != nil {
		return err
	}
	view := c.pages.Products.View(ctx, *term)
	if err := noticeErr(view.Notice); err != nil {
		return err
	}
	return c.print(view.Items)
}

func (c *cli) movement(ctx context.Context, role entity.Role, args []string) error {
	if !c.table.Allows(role, "/inventory") {
		return errors.New(crud.ForbiddenMessage)
	}
	fs := c.flags("movement")
	product := fs.String("product", "", "id del producto")
	kind := fs.String("type", "IN", "IN u OUT")
	qty := fs.Int("qty", 0, "cantidad")
	price := fs.String("price", "", "precio unitario (solo IN)")
	reason := fs.String("reason", "", "motivo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in := dto.CreateMovementRequest{
		ProductID: *product,
		Type:      entity.MovementType(strings.ToUpper(*kind)),
		Quantity:  *qty,
		Reason:    *reason,
	}
	if *price != "" {
		p, err := decimal.NewFromString(*price)
		if err != nil {
			return fmt.Errorf("precio inválido: %q", *price)
		}
		in.UnitPrice = &p
	}
	n := c.pages.Movements.Create(ctx, in)
	if err := noticeErr(&n); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, n.Message)
	return nil
}

func (c *cli) report(ctx context.Context, args []string) error {
	fs := c.flags("report")
	date := fs.String("date", "", "día del reporte diario (por defecto hoy)")
	year := fs.Int("year", 0, "año del reporte mensual")
	month := fs.Int("month", 0, "mes del reporte mensual (1-12)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	view := c.dashboard.GetReports(ctx, *date, *year, *month)
	if err := noticeErr(view.Notice); err != nil {
		return err
	}
	return c.print(view)
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// noticeErr convierte un aviso de error o advertencia en error de salida.
func noticeErr(n *dto.Notice) error {
	if n == nil || n.Succeeded() || n.Level == dto.NoticeConfirm {
		return nil
	}
	if n.Message == crud.SessionMessage {
		return fmt.Errorf("%s: %w", n.Message, domain.ErrUnauthorized)
	}
	if len(n.Messages) > 1 {
		return errors.New(strings.Join(n.Messages, "; "))
	}
	return errors.New(n.Message)
}
