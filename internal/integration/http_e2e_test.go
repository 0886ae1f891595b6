//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	authad "hoteldir/internal/adapters/auth"
	server "hoteldir/internal/adapters/http_server"
	redisad "hoteldir/internal/adapters/redis"
	"hoteldir/internal/app"
	mysqlrepo "hoteldir/internal/storage/mysql"
)

// ---------- helpers ----------

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startStack(t *testing.T) *httptest.Server {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hoteldir",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hoteldir?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()
	if err := repo.SeedAuth(ctx); err != nil {
		t.Fatalf("SeedAuth: %v", err)
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	tokens, err := authad.NewTokenManager("e2e-secret", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	users := app.NewUserService(repo)
	if _, _, err := users.EnsureAdmin(ctx, "admin", "admin123", "admin@hotel.com"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	handlers := server.NewHandlers(server.HandlersConfig{
		AppEnv:     "test",
		Tokens:     tokens,
		Authz:      app.NewAuthorizer(repo, cache, time.Minute),
		Auth:       app.NewAuthService(repo, tokens),
		Hotels:     app.NewHotelService(repo, cache, time.Minute),
		Reviews:    app.NewReviewService(repo),
		Users:      app.NewUserService(repo),
		LoginRPS:   1000,
		LoginBurst: 1000,
	})

	srv := server.New()
	handlers.MountHandlers(srv)
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func login(t *testing.T, ts *httptest.Server, username, password string) string {
	t.Helper()
	code, body := call(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username, "password": password,
	})
	if code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %v", username, code, body)
	}
	return body["data"].(map[string]any)["token"].(string)
}

// ---------- the test ----------

// Full journey against real MySQL and Redis: bootstrap admin, promote a
// manager, create a hotel, review it, vote, and read everything back.
func TestDirectoryEndToEnd(t *testing.T) {
	ts := startStack(t)

	adminTok := login(t, ts, "admin", "admin123")

	// register two accounts
	for _, u := range []string{"mgr", "ana"} {
		code, body := call(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": u, "password": "secret1", "email": u + "@example.com",
		})
		if code != http.StatusCreated {
			t.Fatalf("register %s: status %d, body %v", u, code, body)
		}
	}

	// promote mgr to hotel_manager (admin only)
	code, body := call(t, ts, http.MethodGet, "/api/users?search=mgr", adminTok, nil)
	if code != http.StatusOK {
		t.Fatalf("list users: %d %v", code, body)
	}
	usersList := body["data"].([]any)
	if len(usersList) != 1 {
		t.Fatalf("search=mgr returned %d users", len(usersList))
	}
	mgrID := int64(usersList[0].(map[string]any)["UserID"].(float64))

	code, _ = call(t, ts, http.MethodPut, fmt.Sprintf("/api/users/%d/role", mgrID), adminTok,
		map[string]string{"role": "hotel_manager"})
	if code != http.StatusOK {
		t.Fatalf("promote mgr: status %d", code)
	}

	// admin holds hotels:write; create a hotel managed by mgr
	code, body = call(t, ts, http.MethodPost, "/api/hotels", adminTok, map[string]any{
		"GlobalPropertyName":      "Harbor View",
		"GlobalChainCode":         "HV",
		"PropertyAddress1":        "1 Quay St",
		"PrimaryAirportCode":      "TST",
		"CityID":                  1,
		"PropertyStateProvinceID": 1,
		"PropertyZipPostal":       "00001",
		"PropertyPhoneNumber":     "+1-555-0100",
		"SabrePropertyRating":     4.2,
		"PropertyLatitude":        41.1,
		"PropertyLongitude":       -8.6,
		"SourceGroupCode":         "GRP",
		"ManagerUsername":         "mgr",
	})
	if code != http.StatusCreated {
		t.Fatalf("create hotel: status %d, body %v", code, body)
	}
	hotel := body["data"].(map[string]any)
	hotelID := int64(hotel["GlobalPropertyID"].(float64))
	if hotel["ManagerUsername"] != "mgr" {
		t.Fatalf("manager not attached: %v", hotel)
	}

	// the manager sees it under my-hotels
	mgrTok := login(t, ts, "mgr", "secret1")
	code, body = call(t, ts, http.MethodGet, "/api/my-hotels", mgrTok, nil)
	if code != http.StatusOK || len(body["data"].([]any)) != 1 {
		t.Fatalf("my-hotels: status %d, body %v", code, body)
	}

	// ana reviews the hotel and the admin votes on it
	anaTok := login(t, ts, "ana", "secret1")
	code, body = call(t, ts, http.MethodPost, "/api/reviews", anaTok, map[string]any{
		"HotelID":           hotelID,
		"ReviewerName":      "ana",
		"ReviewSubject":     "Lovely",
		"ReviewContent":     "Clean rooms.",
		"ReviewDate":        "2026-03-14",
		"OverallRating":     4.5,
		"CleanlinessRating": 5,
		"LocationRating":    4,
		"ServiceRating":     4,
		"ValueRating":       3.5,
	})
	if code != http.StatusCreated {
		t.Fatalf("create review: status %d, body %v", code, body)
	}
	reviewID := int64(body["data"].(map[string]any)["ReviewID"].(float64))

	likePath := fmt.Sprintf("/api/reviews/%d/like", reviewID)
	_, body = call(t, ts, http.MethodPost, likePath, adminTok, nil)
	if body["data"].(map[string]any)["helpfulYes"].(float64) != 1 {
		t.Fatalf("after like: %v", body["data"])
	}
	_, body = call(t, ts, http.MethodPost, likePath, adminTok, nil)
	if body["data"].(map[string]any)["helpfulYes"].(float64) != 0 {
		t.Fatalf("repeated like must retract: %v", body["data"])
	}

	// details endpoint returns hotel + reviews with pagination
	code, body = call(t, ts, http.MethodGet, fmt.Sprintf("/api/hotels/id/%d/details", hotelID), "", nil)
	if code != http.StatusOK {
		t.Fatalf("details: status %d", code)
	}
	data := body["data"].(map[string]any)
	if len(data["reviews"].([]any)) != 1 {
		t.Fatalf("details reviews: %v", data["reviews"])
	}
	if body["pagination"].(map[string]any)["totalItems"].(float64) != 1 {
		t.Fatalf("details pagination: %v", body["pagination"])
	}

	// second hotels read should be served from the Redis cache
	for i := 0; i < 2; i++ {
		code, body = call(t, ts, http.MethodGet, "/api/hotels", "", nil)
		if code != http.StatusOK || len(body["data"].([]any)) != 1 {
			t.Fatalf("list hotels pass %d: status %d, body %v", i, code, body)
		}
	}

	// deleting the hotel cascades its reviews
	code, _ = call(t, ts, http.MethodDelete, fmt.Sprintf("/api/hotels/%d", hotelID), adminTok, nil)
	if code != http.StatusOK {
		t.Fatalf("delete hotel: status %d", code)
	}
	code, _ = call(t, ts, http.MethodGet, fmt.Sprintf("/api/hotels/id/%d", hotelID), "", nil)
	if code != http.StatusNotFound {
		t.Fatalf("deleted hotel still readable: %d", code)
	}
}
