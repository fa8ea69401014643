package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/reports"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/usecase"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	apphttp "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/interfaces/http"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

// ── stubs ──────────────────────────────────────────────────────────────────

type stubSocios struct {
	apphttp.SocioService
	created  *dto.SocioRequest
	createFn func(dto.SocioRequest) (*dto.SocioResponse, error)
	getErr   error
	updErr   error
	listQ    dto.SocioListQuery
}

func (s *stubSocios) Create(_ context.Context, in dto.SocioRequest) (*dto.SocioResponse, error) {
	s.created = &in
	if s.createFn != nil {
		return s.createFn(in)
	}
	return &dto.SocioResponse{IDSocio: 1, Nombre: in.Nombre, Apellido: in.Apellido, Version: 1}, nil
}

func (s *stubSocios) GetByID(_ context.Context, id int64) (*dto.SocioResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.SocioResponse{IDSocio: id}, nil
}

func (s *stubSocios) Update(_ context.Context, id int64, in dto.SocioRequest) (*dto.SocioResponse, error) {
	if s.updErr != nil {
		return nil, s.updErr
	}
	return &dto.SocioResponse{IDSocio: id, Version: in.Version + 1}, nil
}

func (s *stubSocios) List(_ context.Context, q dto.SocioListQuery) (*dto.Page[dto.SocioResponse], error) {
	s.listQ = q
	return &dto.Page[dto.SocioResponse]{
		Items:      []dto.SocioResponse{{IDSocio: 1}, {IDSocio: 2}},
		Pagination: dto.NewPagination(q.Page, q.Limit, 12),
	}, nil
}

type stubVentas struct {
	apphttp.VentaService
	statsQ dto.DateRangeQuery
	got    *dto.VentaRequest
}

func (s *stubVentas) Create(_ context.Context, in dto.VentaRequest) (*dto.VentaResponse, error) {
	s.got = &in
	return &dto.VentaResponse{IDVenta: 5, Total: in.Cantidad.Mul(in.PrecioUnitario)}, nil
}

func (s *stubVentas) Statistics(_ context.Context, q dto.DateRangeQuery) (*dto.VentaStatistics, error) {
	s.statsQ = q
	return &dto.VentaStatistics{TotalVentas: 3, MontoTotal: decimal.NewFromInt(90)}, nil
}

type stubUsuarios struct {
	apphttp.UsuarioService
	deletedID, byUser int64
}

func (s *stubUsuarios) Delete(_ context.Context, id, current int64) error {
	s.deletedID, s.byUser = id, current
	if id == current {
		return domain.ErrForbidden
	}
	return nil
}

type stubAuth struct {
	loginErr error
}

func (s *stubAuth) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{Token: "tok-123", User: dto.UsuarioResponse{Email: in.Email, Rol: "admin"}}, nil
}

func (s *stubAuth) Session(token string) (*dto.SessionResponse, error) {
	if token != "tok-123" {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionResponse{Authenticated: true, IDUsuario: 1, Rol: "admin"}, nil
}

type stubKPIs struct {
	out *dto.KPIReport
	err error
	q   dto.ReportQuery
}

func (s *stubKPIs) GetKPIs(_ context.Context, q dto.ReportQuery) (*dto.KPIReport, error) {
	s.q = q
	return s.out, s.err
}

type stubExport struct{}

func (stubExport) Export(context.Context, dto.ReportQuery) ([]byte, string, error) {
	return []byte("%PDF-1.4 fake"), "reporte_2026-01-01_2026-03-15.pdf", nil
}

// ── helpers ────────────────────────────────────────────────────────────────

func newRouterApp(deps apphttp.RouterDeps) *fiber.App {
	deps.JWTSecret = testJWTSecret
	deps.Cookie = apphttp.CookieConfig{Name: testCookieName}
	app := apphttp.NewApp(apphttp.ServerConfig{AppName: "test"}, logger.Nop())
	apphttp.Router(app, deps)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body, role string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── socios ─────────────────────────────────────────────────────────────────

func TestSocios_Create_201(t *testing.T) {
	socios := &stubSocios{}
	app := newRouterApp(apphttp.RouterDeps{Socios: socios})

	resp := call(t, app, http.MethodPost, "/api/socios", `{"nombre":"Ana","apellido":"Pérez","cedula":"8-123-456"}`, "admin")

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Ana", data["nombre"])
	require.NotNil(t, socios.created)
	assert.Equal(t, "8-123-456", socios.created.Cedula)
}

func TestSocios_Create_Validacion_400(t *testing.T) {
	socios := &stubSocios{}
	app := newRouterApp(apphttp.RouterDeps{Socios: socios})

	resp := call(t, app, http.MethodPost, "/api/socios", `{"nombre":"","apellido":"Pérez","cedula":"1","email":"no-es-email"}`, "admin")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "es obligatorio", fields["nombre"])
	assert.Equal(t, "email inválido", fields["email"])
	assert.Nil(t, socios.created, "no debe llegar al caso de uso")
}

func TestSocios_Create_CuerpoInvalido_400(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Socios: &stubSocios{}})

	resp := call(t, app, http.MethodPost, "/api/socios", `{nombre`, "admin")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeBody(t, resp)["code"])
}

func TestSocios_Create_CedulaDuplicada_409(t *testing.T) {
	socios := &stubSocios{createFn: func(dto.SocioRequest) (*dto.SocioResponse, error) {
		return nil, domain.ErrDuplicate
	}}
	app := newRouterApp(apphttp.RouterDeps{Socios: socios})

	resp := call(t, app, http.MethodPost, "/api/socios", `{"nombre":"Ana","apellido":"Pérez","cedula":"1"}`, "admin")

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeBody(t, resp)["code"])
}

func TestSocios_Create_ProductorNoPuede_403(t *testing.T) {
	socios := &stubSocios{}
	app := newRouterApp(apphttp.RouterDeps{Socios: socios})

	resp := call(t, app, http.MethodPost, "/api/socios", `{"nombre":"Ana","apellido":"Pérez","cedula":"1"}`, "productor")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Nil(t, socios.created)
}

func TestSocios_GetByID(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{"ok", "/api/socios/7", nil, fiber.StatusOK, ""},
		{"no existe", "/api/socios/7", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"id inválido", "/api/socios/abc", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"id negativo", "/api/socios/-1", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"error de base", "/api/socios/7", &pgconn.PgError{Code: "57P01"}, fiber.StatusInternalServerError, "DATABASE"},
		{"error desconocido", "/api/socios/7", errors.New("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRouterApp(apphttp.RouterDeps{Socios: &stubSocios{getErr: tc.err}})

			resp := call(t, app, http.MethodGet, tc.path, "", "cliente")

			assert.Equal(t, tc.status, resp.StatusCode)
			body := decodeBody(t, resp)
			if tc.code != "" {
				assert.Equal(t, tc.code, body["code"])
				assert.NotContains(t, body["message"], "boom", "no se exponen detalles internos")
			}
		})
	}
}

func TestSocios_Update_Conflicto_409(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Socios: &stubSocios{updErr: domain.ErrConflict}})

	resp := call(t, app, http.MethodPut, "/api/socios/3", `{"nombre":"Ana","apellido":"Pérez","cedula":"1","version":2}`, "admin")

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeBody(t, resp)["code"])
}

func TestSocios_List_Paginacion(t *testing.T) {
	socios := &stubSocios{}
	app := newRouterApp(apphttp.RouterDeps{Socios: socios})

	resp := call(t, app, http.MethodGet, "/api/socios?page=2&limit=5&search=%20ana%20&estado=activo", "", "contador")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, socios.listQ.Page)
	assert.Equal(t, 5, socios.listQ.Limit)
	assert.Equal(t, "ana", socios.listQ.Search)
	assert.Equal(t, "activo", socios.listQ.Estado)

	body := decodeBody(t, resp)
	assert.Len(t, body["data"], 2)
	pag := body["pagination"].(map[string]any)
	assert.EqualValues(t, 2, pag["current_page"])
	assert.EqualValues(t, 3, pag["total_pages"])
	assert.EqualValues(t, 12, pag["total_records"])
}

func TestSocios_SinSesion_401(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Socios: &stubSocios{}})

	resp := call(t, app, http.MethodGet, "/api/socios", "", "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ── ventas ─────────────────────────────────────────────────────────────────

func TestVentas_Create_DecimalYValidacion(t *testing.T) {
	ventas := &stubVentas{}
	app := newRouterApp(apphttp.RouterDeps{Ventas: ventas})

	resp := call(t, app, http.MethodPost, "/api/ventas", `{"producto":"Café","cantidad":"10","precio_unitario":5,"fecha_venta":"2026-03-01","total":999}`, "contador")

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.NotNil(t, ventas.got)
	assert.True(t, ventas.got.Cantidad.Equal(decimal.NewFromInt(10)))

	resp = call(t, app, http.MethodPost, "/api/ventas", `{"producto":"Café","cantidad":0,"precio_unitario":5,"fecha_venta":"01/03/2026"}`, "contador")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	fields := decodeBody(t, resp)["fields"].(map[string]any)
	assert.Contains(t, fields, "cantidad")
	assert.Contains(t, fields, "fecha_venta")
}

func TestVentas_Statistics_AceptaAmbosNombresDeFecha(t *testing.T) {
	ventas := &stubVentas{}
	app := newRouterApp(apphttp.RouterDeps{Ventas: ventas})

	resp := call(t, app, http.MethodGet, "/api/ventas/statistics?dateFrom=2026-01-01&date_to=2026-01-31", "", "productor")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2026-01-01", ventas.statsQ.DateFrom)
	assert.Equal(t, "2026-01-31", ventas.statsQ.DateTo)
}

// ── usuarios ───────────────────────────────────────────────────────────────

func TestUsuarios_Delete_PasaUsuarioActual(t *testing.T) {
	usuarios := &stubUsuarios{}
	app := newRouterApp(apphttp.RouterDeps{Usuarios: usuarios})

	resp := call(t, app, http.MethodDelete, "/api/usuarios/9", "", "admin")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(9), usuarios.deletedID)
	assert.Equal(t, int64(1), usuarios.byUser)

	resp = call(t, app, http.MethodDelete, "/api/usuarios/1", "", "admin")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUsuarios_Delete_PropiaCuenta403(t *testing.T) {
	// El caso de uso corta antes de tocar el repositorio.
	app := newRouterApp(apphttp.RouterDeps{Usuarios: usecase.NewUsuarioUseCase(nil)})

	resp := call(t, app, http.MethodDelete, "/api/usuarios/1", "", "admin")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "FORBIDDEN", body["code"])
}

func TestUsuarios_SoloAdmin(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Usuarios: &stubUsuarios{}})

	resp := call(t, app, http.MethodDelete, "/api/usuarios/9", "", "contador")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// ── auth ───────────────────────────────────────────────────────────────────

func TestAuth_Login_DejaCookieHttpOnly(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Auth: &stubAuth{}})

	resp := call(t, app, http.MethodPost, "/api/auth/login", `{"email":"ana@coop.org","password":"secreto123"}`, "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var session *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName {
			session = ck
		}
	}
	require.NotNil(t, session)
	assert.Equal(t, "tok-123", session.Value)
	assert.True(t, session.HttpOnly)

	data := decodeBody(t, resp)["data"].(map[string]any)
	assert.Equal(t, "tok-123", data["token"])
}

func TestAuth_Login_CredencialesInvalidas_401(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Auth: &stubAuth{loginErr: domain.ErrUnauthorized}})

	resp := call(t, app, http.MethodPost, "/api/auth/login", `{"email":"ana@coop.org","password":"mala"}`, "")

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeBody(t, resp)["code"])
}

func TestAuth_Session(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Auth: &stubAuth{}})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "tok-123"})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/auth/session", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_Logout_ExpiraCookie(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Auth: &stubAuth{}})

	resp := call(t, app, http.MethodPost, "/api/auth/logout", "", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	assert.Empty(t, resp.Cookies()[0].Value)
}

// ── reportes ───────────────────────────────────────────────────────────────

func TestReportes_KPIs_OK(t *testing.T) {
	kpis := &stubKPIs{out: &dto.KPIReport{
		KPIs:             dto.KPIs{TotalIncome: decimal.NewFromInt(1000), ActiveMembers: 4},
		Period:           dto.ReportPeriod{From: "2026-01-01", To: "2026-03-15"},
		MarginCostSource: "estimated",
	}}
	app := newRouterApp(apphttp.RouterDeps{KPIs: kpis})

	resp := call(t, app, http.MethodGet, "/api/reportes/kpis?dateFrom=2026-01-01&product=Caf%C3%A9&socio=3", "", "contador")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "estimated", body["marginCostSource"])
	assert.EqualValues(t, 4, body["kpis"].(map[string]any)["activeMembers"])
	assert.Equal(t, "Café", kpis.q.Product)
	require.NotNil(t, kpis.q.SocioID)
	assert.Equal(t, int64(3), *kpis.q.SocioID)
}

func TestReportes_KPIs_ErrorDeBase_DevuelveCeros(t *testing.T) {
	kpis := &stubKPIs{out: reports.ZeroKPIs(), err: &pgconn.PgError{Code: "08006"}}
	app := newRouterApp(apphttp.RouterDeps{KPIs: kpis})

	resp := call(t, app, http.MethodGet, "/api/reportes/kpis", "", "admin")

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "DATABASE", body["code"])
	assert.Equal(t, "0", body["kpis"].(map[string]any)["totalIncome"])
}

func TestReportes_KPIs_RangoInvalido_400(t *testing.T) {
	kpis := &stubKPIs{err: domain.NewValidationError("dateFrom", "debe ser anterior o igual a dateTo")}
	app := newRouterApp(apphttp.RouterDeps{KPIs: kpis})

	resp := call(t, app, http.MethodGet, "/api/reportes/kpis?dateFrom=2026-05-01&dateTo=2026-01-01", "", "admin")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestReportes_ClienteNoAccede_403(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{KPIs: &stubKPIs{out: reports.ZeroKPIs()}})

	resp := call(t, app, http.MethodGet, "/api/reportes/kpis", "", "cliente")

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestReportes_ExportPDF_Adjunto(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{Export: stubExport{}})

	resp := call(t, app, http.MethodGet, "/api/reportes/export/pdf", "", "admin")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reporte_2026-01-01_2026-03-15.pdf"`, resp.Header.Get("Content-Disposition"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

// ── health ─────────────────────────────────────────────────────────────────

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	app := newRouterApp(apphttp.RouterDeps{DB: pingFunc(func(context.Context) error { return nil })})
	resp := call(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = newRouterApp(apphttp.RouterDeps{DB: pingFunc(func(context.Context) error { return errors.New("down") })})
	resp = call(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
