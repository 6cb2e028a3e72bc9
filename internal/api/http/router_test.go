package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/huevos-organicos/backend/internal/api/dto"
	"github.com/huevos-organicos/backend/internal/api/http/handlers"
	"github.com/huevos-organicos/backend/internal/auth"
	"github.com/huevos-organicos/backend/internal/config"
	"github.com/huevos-organicos/backend/internal/domain"
	"github.com/huevos-organicos/backend/internal/observability"
	"github.com/huevos-organicos/backend/internal/service"
)

type testEnv struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	users    *stubUsers
	products *stubProducts
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := &stubUsers{nextID: 10, users: map[int64]*domain.User{
		1: {ID: 1, Name: "Administrador", Email: "admin@x.com", PasswordHash: hash(t, "admin123"), Role: domain.RoleAdmin, Active: true},
		2: {ID: 2, Name: "Ana", Email: "ana@x.com", PasswordHash: hash(t, "ana12345"), Role: domain.RoleEmployee, Active: true},
		3: {ID: 3, Name: "Baja", Email: "baja@x.com", PasswordHash: hash(t, "baja1234"), Role: domain.RoleEmployee, Active: false},
	}}
	products := &stubProducts{nextID: 10, products: map[int64]*domain.Product{
		1: {ID: 1, Name: "Huevos Premium", Price: 12.5, Category: domain.CategoryPremium, Stock: 30, Status: domain.StatusActive, Features: []string{"orgánico"}},
	}}
	clients := stubClients{}
	leads := &stubLeads{}

	tokens, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	authCfg := config.AuthConfig{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}
	metrics := observability.NewMetrics()
	validator := dto.NewValidator()

	stats := service.NewStatsService(service.StatsDependencies{Products: products, Users: users, Clients: clients})
	authSvc := service.NewAuthService(authCfg, service.AuthDependencies{UserRepo: users, Tokens: tokens, Metrics: metrics})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second, []string{"http://localhost:5173"})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("API Huevos Orgánicos", "test", stubPinger{}, nil, stats),
		Auth:           handlers.NewAuthHandler(authSvc),
		Users:          handlers.NewUsersHandler(service.NewUserService(users, nil, nil, authCfg), validator),
		Products:       handlers.NewProductsHandler(service.NewProductService(products), validator),
		Clients:        handlers.NewClientsHandler(service.NewClientService(clients, stats), validator),
		Leads:          handlers.NewLeadsHandler(service.NewLeadService(leads, nil), validator),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, users, nil, metrics),
		Metrics:        metrics,
	})
	return &testEnv{app: app, tokens: tokens, users: users, products: products}
}

func (e *testEnv) tokenFor(t *testing.T, id int64, email string, role domain.Role) string {
	t.Helper()
	token, _, err := e.tokens.Issue(id, email, role)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, body, authorization string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestLogin_AdminSucceeds(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "POST", "/api/auth/login", `{"email":"admin@x.com","password":"admin123"}`, "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["success"] != true {
		t.Fatalf("expected success envelope: %v", body)
	}
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	if user["rol"] != "admin" || user["nombre"] != "Administrador" || user["email"] != "admin@x.com" || user["id"] != float64(1) {
		t.Fatalf("unexpected user: %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash leaked")
	}
	if !env.tokens.Verify(data["token"].(string)).Valid() {
		t.Fatalf("issued token does not verify")
	}
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"missing password", `{"email":"admin@x.com"}`, 400, "Email y contraseña son requeridos"},
		{"empty body", `{}`, 400, "Email y contraseña son requeridos"},
		{"wrong password", `{"email":"admin@x.com","password":"nope"}`, 401, "Credenciales incorrectas"},
		{"unknown email", `{"email":"ghost@x.com","password":"admin123"}`, 401, "Credenciales incorrectas"},
		{"inactive", `{"email":"baja@x.com","password":"baja1234"}`, 401, "Credenciales incorrectas"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.do(t, "POST", "/api/auth/login", tc.body, "")
			if status != tc.status || body["error"] != tc.message {
				t.Fatalf("expected %d %q, got %d %v", tc.status, tc.message, status, body)
			}
		})
	}
}

func TestLogin_StoreFailureIsOpaque(t *testing.T) {
	env := newTestEnv(t)
	env.users.emailErr = errors.New("dial tcp 10.1.2.3:5432: connection refused")

	status, body := env.do(t, "POST", "/api/auth/login", `{"email":"admin@x.com","password":"admin123"}`, "")
	if status != fiber.StatusInternalServerError || body["error"] != "Error del servidor" {
		t.Fatalf("expected opaque 500, got %d %v", status, body)
	}
}

func TestGate_MissingOrMalformedHeader(t *testing.T) {
	env := newTestEnv(t)

	for _, header := range []string{"", "Basic YWRtaW46YWRtaW4=", "Bearer", "Bearer   "} {
		status, body := env.do(t, "GET", "/api/auth/me", "", header)
		if status != fiber.StatusUnauthorized || body["error"] != "Token requerido" {
			t.Fatalf("header %q: expected 401 Token requerido, got %d %v", header, status, body)
		}
	}
	if env.users.idLookups != 0 {
		t.Fatalf("store must not be queried without a token, got %d lookups", env.users.idLookups)
	}
}

func TestGate_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	past := env.tokens.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) })
	expired, _, err := past.Issue(1, "admin@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other, _ := auth.NewTokenManager("another-secret")
	forged, _, _ := other.Issue(1, "admin@x.com", domain.RoleAdmin)

	for name, token := range map[string]string{"garbage": "not.a.token", "expired": expired, "forged": forged} {
		status, body := env.do(t, "GET", "/api/auth/me", "", "Bearer "+token)
		if status != fiber.StatusForbidden || body["error"] != "Token inválido o expirado" {
			t.Fatalf("%s: expected 403, got %d %v", name, status, body)
		}
	}
	if env.users.idLookups != 0 {
		t.Fatalf("store must not be queried for invalid tokens")
	}
}

func TestGate_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, 3, "baja@x.com", domain.RoleEmployee)

	status, body := env.do(t, "GET", "/api/auth/me", "", "Bearer "+token)
	if status != fiber.StatusUnauthorized || body["error"] != "Usuario no válido o inactivo" {
		t.Fatalf("expected 401 inactive, got %d %v", status, body)
	}
}

func TestGate_AttachesIdentity(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)

	status, body := env.do(t, "GET", "/api/auth/me", "", "Bearer "+token)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	user := body["data"].(map[string]any)["user"].(map[string]any)
	if user["id"] != float64(2) || user["nombre"] != "Ana" || user["rol"] != "empleado" {
		t.Fatalf("unexpected identity: %v", user)
	}
	if env.users.idLookups != 1 {
		t.Fatalf("expected exactly one store lookup, got %d", env.users.idLookups)
	}
}

func TestUsers_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	employee := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)
	admin := env.tokenFor(t, 1, "admin@x.com", domain.RoleAdmin)

	status, body := env.do(t, "GET", "/api/usuarios", "", "Bearer "+employee)
	if status != fiber.StatusForbidden || body["error"] != "Permisos insuficientes" {
		t.Fatalf("expected 403 for employee, got %d %v", status, body)
	}

	status, body = env.do(t, "GET", "/api/usuarios", "", "Bearer "+admin)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d %v", status, body)
	}
	if users := body["data"].([]any); len(users) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(users))
	}
}

func TestUsers_DeactivateRevokesAccess(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, 1, "admin@x.com", domain.RoleAdmin)
	employee := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)

	if status, body := env.do(t, "GET", "/api/auth/me", "", "Bearer "+employee); status != fiber.StatusOK {
		t.Fatalf("expected employee to be active, got %d %v", status, body)
	}

	status, body := env.do(t, "PATCH", "/api/usuarios/2/desactivar", "", "Bearer "+admin)
	if status != fiber.StatusOK || body["data"].(map[string]any)["activo"] != false {
		t.Fatalf("deactivate failed: %d %v", status, body)
	}

	status, body = env.do(t, "GET", "/api/auth/me", "", "Bearer "+employee)
	if status != fiber.StatusUnauthorized || body["error"] != "Usuario no válido o inactivo" {
		t.Fatalf("token of deactivated account must stop working, got %d %v", status, body)
	}
}

func TestUsers_CreateValidates(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, 1, "admin@x.com", domain.RoleAdmin)

	status, body := env.do(t, "POST", "/api/usuarios", `{"nombre":"Luis","email":"no-email","password":"123"}`, "Bearer "+admin)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	details := body["details"].(map[string]any)
	if _, ok := details["email"]; !ok {
		t.Fatalf("expected email detail: %v", details)
	}

	status, body = env.do(t, "POST", "/api/usuarios", `{"nombre":"Luis","email":"ana@x.com","password":"123456"}`, "Bearer "+admin)
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d %v", status, body)
	}

	status, body = env.do(t, "POST", "/api/usuarios", `{"nombre":"Luis","email":"luis@x.com","password":"123456"}`, "Bearer "+admin)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d %v", status, body)
	}
	created := body["data"].(map[string]any)
	if created["rol"] != "empleado" || created["activo"] != true {
		t.Fatalf("unexpected account: %v", created)
	}
}

func TestProducts_StatusOnlyUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)

	status, body := env.do(t, "PUT", "/api/productos/1", `{"estado":"inactivo"}`, "Bearer "+token)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	product := body["data"].(map[string]any)
	if product["estado"] != "inactivo" || product["nombre"] != "Huevos Premium" || product["precio"] != 12.5 {
		t.Fatalf("status-only update touched other fields: %v", product)
	}

	status, _ = env.do(t, "GET", "/api/productos/1", "", "")
	if status != fiber.StatusNotFound {
		t.Fatalf("inactive product must be hidden from the public lookup, got %d", status)
	}

	status, body = env.do(t, "GET", "/api/productos/inactivos", "", "")
	if status != fiber.StatusOK || len(body["data"].([]any)) != 1 {
		t.Fatalf("expected one inactive product, got %d %v", status, body)
	}
}

func TestProducts_FullUpdateRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)

	status, body := env.do(t, "PUT", "/api/productos/1", `{"estado":"activo","stock":3}`, "Bearer "+token)
	if status != fiber.StatusBadRequest || body["error"] != "Nombre, precio y categoría son requeridos para actualización completa" {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
}

func TestProducts_WritesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "POST", "/api/productos", `{"nombre":"X","precio":1,"categoria":"standard"}`, "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	status, body := env.do(t, "GET", "/api/productos", "", "")
	if status != fiber.StatusOK || len(body["data"].([]any)) != 1 {
		t.Fatalf("public listing failed: %d %v", status, body)
	}
}

func TestClients_PublicStats(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/clientes/stats", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["total"] != float64(3) || data["nuevos"] != float64(1) || len(data["porTipo"].([]any)) != 2 {
		t.Fatalf("unexpected stats: %v", data)
	}

	status, _ = env.do(t, "GET", "/api/clientes", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("client list must be gated, got %d", status)
	}
}

func TestLeads_PublicCreateGatedRead(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "POST", "/api/interesados", `{"nombre":"Rosa","email":"rosa@x.com","telefono":"999888777"}`, "")
	if status != fiber.StatusCreated || body["data"].(map[string]any)["nombre"] != "Rosa" {
		t.Fatalf("expected 201, got %d %v", status, body)
	}

	status, _ = env.do(t, "GET", "/api/interesados", "", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("lead listing must be gated, got %d", status)
	}
	token := env.tokenFor(t, 1, "admin@x.com", domain.RoleAdmin)
	status, body = env.do(t, "GET", "/api/interesados/1", "", "Bearer "+token)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
}

func TestStatsAndHealth(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/stats", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	data := body["data"].(map[string]any)
	if data["totalProductos"] != float64(1) || data["totalUsuarios"] != float64(2) {
		t.Fatalf("unexpected stats: %v", data)
	}

	status, body = env.do(t, "GET", "/api/health", "", "")
	if status != fiber.StatusOK || body["database"] != "Conectado" {
		t.Fatalf("unexpected health: %d %v", status, body)
	}
}

func TestNotFoundAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, "GET", "/api/nada", "", "")
	if status != fiber.StatusNotFound || body["error"] != "Ruta no encontrada" {
		t.Fatalf("expected 404, got %d %v", status, body)
	}

	env.do(t, "POST", "/api/auth/login", `{"email":"admin@x.com","password":"nope"}`, "")

	resp, err := env.app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `huevos_auth_login_attempts_total{result="invalid"} 1`) {
		t.Fatalf("login attempt not exposed:\n%s", raw)
	}
}

func TestUsers_CreateRejectsOverlongMultibytePassword(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, 1, "admin@x.com", domain.RoleAdmin)

	body := `{"nombre":"Luis","email":"luis@x.com","password":"` + strings.Repeat("ñ", 40) + `"}`
	status, resp := env.do(t, "POST", "/api/usuarios", body, "Bearer "+admin)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an 80-byte password, got %d %v", status, resp)
	}
	if _, ok := resp["details"].(map[string]any)["password"]; !ok {
		t.Fatalf("expected password detail: %v", resp)
	}
}

func TestProducts_FullUpdateWithoutStatusKeepsSoftDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, 2, "ana@x.com", domain.RoleEmployee)

	if status, body := env.do(t, "DELETE", "/api/productos/1", "", "Bearer "+token); status != fiber.StatusOK {
		t.Fatalf("delete failed: %d %v", status, body)
	}

	status, body := env.do(t, "PUT", "/api/productos/1", `{"nombre":"Huevos Premium XL","precio":14,"categoria":"premium","stock":5}`, "Bearer "+token)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d %v", status, body)
	}
	product := body["data"].(map[string]any)
	if product["estado"] != "inactivo" || product["nombre"] != "Huevos Premium XL" {
		t.Fatalf("update without estado must keep the product inactive: %v", product)
	}
}
