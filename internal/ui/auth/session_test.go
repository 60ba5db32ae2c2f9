package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestSessionEncryptDecryptRoundTrip проверяет шифрование и дешифрование SessionData.
func TestSessionEncryptDecryptRoundTrip(t *testing.T) {
	sm, err := NewSessionManager("", "/admin", false)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}

	original := &SessionData{
		Username:  "admin",
		CSRFToken: "csrf-token-12345",
		IssuedAt:  time.Now().Unix(),
	}

	// Шифруем
	encrypted, err := sm.Encrypt(original)
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}

	if encrypted == "" {
		t.Fatal("Зашифрованная строка пустая")
	}

	// Дешифруем
	decrypted, err := sm.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка дешифрования: %v", err)
	}

	if decrypted.Username != original.Username {
		t.Errorf("Username: want %q, got %q", original.Username, decrypted.Username)
	}
	if decrypted.CSRFToken != original.CSRFToken {
		t.Errorf("CSRFToken: want %q, got %q", original.CSRFToken, decrypted.CSRFToken)
	}
	if decrypted.IssuedAt != original.IssuedAt {
		t.Errorf("IssuedAt: want %d, got %d", original.IssuedAt, decrypted.IssuedAt)
	}
}

// TestSessionManagerWithStringKey проверяет инициализацию с произвольной строкой-ключом.
func TestSessionManagerWithStringKey(t *testing.T) {
	sm, err := NewSessionManager("my-secret-key-for-testing", "/admin", false)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager с string-ключом: %v", err)
	}

	data := &SessionData{Username: "admin", CSRFToken: "tok"}

	encrypted, err := sm.Encrypt(data)
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}

	decrypted, err := sm.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка дешифрования: %v", err)
	}

	if decrypted.Username != data.Username {
		t.Errorf("Username: want %q, got %q", data.Username, decrypted.Username)
	}
}

// TestSessionDecryptWithWrongKey проверяет, что дешифрование чужим ключом не работает.
func TestSessionDecryptWithWrongKey(t *testing.T) {
	sm1, _ := NewSessionManager("key-one", "/admin", false)
	sm2, _ := NewSessionManager("key-two", "/admin", false)

	data := &SessionData{Username: "admin"}
	encrypted, err := sm1.Encrypt(data)
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}

	// Попытка дешифрования другим ключом должна завершиться ошибкой
	_, err = sm2.Decrypt(encrypted)
	if err == nil {
		t.Error("Ожидалась ошибка при дешифровании чужим ключом")
	}
}

// TestSessionIsExpired проверяет логику истечения сессии.
func TestSessionIsExpired(t *testing.T) {
	// Сессия старше 24 часов
	expired := &SessionData{
		IssuedAt: time.Now().Add(-25 * time.Hour).Unix(),
	}
	if !expired.IsExpired() {
		t.Error("Ожидалось IsExpired()=true для старой сессии")
	}

	// Свежая сессия
	fresh := &SessionData{
		IssuedAt: time.Now().Unix(),
	}
	if fresh.IsExpired() {
		t.Error("Ожидалось IsExpired()=false для свежей сессии")
	}
}

// TestNewSession проверяет, что новая сессия получает CSRF-токен.
func TestNewSession(t *testing.T) {
	s1, err := NewSession("admin")
	if err != nil {
		t.Fatalf("NewSession вернул ошибку: %v", err)
	}
	if s1.Username != "admin" {
		t.Errorf("Username: want %q, got %q", "admin", s1.Username)
	}
	if s1.CSRFToken == "" {
		t.Error("CSRF-токен пустой")
	}

	s2, err := NewSession("admin")
	if err != nil {
		t.Fatalf("NewSession вернул ошибку: %v", err)
	}
	if s1.CSRFToken == s2.CSRFToken {
		t.Error("CSRF-токены двух сессий совпадают")
	}
}

// TestSessionCookieSetAndGet проверяет установку и извлечение cookie.
func TestSessionCookieSetAndGet(t *testing.T) {
	sm, _ := NewSessionManager("test-key", "/admin", false)

	data := &SessionData{
		Username:  "admin",
		CSRFToken: "csrf-abc",
		IssuedAt:  time.Now().Unix(),
	}

	// Устанавливаем cookie
	w := httptest.NewRecorder()
	if err := sm.SetSessionCookie(w, data); err != nil {
		t.Fatalf("Ошибка установки cookie: %v", err)
	}

	// Извлекаем cookie из response и создаём request с ним
	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Cookie не установлен")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(cookies[0])

	// Читаем сессию из request
	got, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("Ошибка чтения сессии из cookie: %v", err)
	}
	if got == nil {
		t.Fatal("Сессия не найдена")
	}
	if got.Username != data.Username {
		t.Errorf("Username: want %q, got %q", data.Username, got.Username)
	}
	if got.CSRFToken != data.CSRFToken {
		t.Errorf("CSRFToken: want %q, got %q", data.CSRFToken, got.CSRFToken)
	}

	// Проверяем атрибуты cookie
	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("Cookie name: want %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.Path != "/admin" {
		t.Errorf("Cookie path: want %q, got %q", "/admin", cookie.Path)
	}
	if !cookie.HttpOnly {
		t.Error("Cookie должен быть HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("Cookie должен быть SameSite=Lax")
	}
}

// TestSessionCookieMissing проверяет, что отсутствие cookie возвращает nil, nil.
func TestSessionCookieMissing(t *testing.T) {
	sm, _ := NewSessionManager("test-key", "/admin", false)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	data, err := sm.GetSessionFromRequest(req)
	if err != nil {
		t.Fatalf("Ожидалось nil error, получено: %v", err)
	}
	if data != nil {
		t.Error("Ожидалось nil data при отсутствии cookie")
	}
}

// TestClearSessionCookie проверяет очистку session cookie.
func TestClearSessionCookie(t *testing.T) {
	sm, _ := NewSessionManager("test-key", "/admin", false)

	w := httptest.NewRecorder()
	sm.ClearSessionCookie(w)

	resp := w.Result()
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Cookie очистки не установлен")
	}

	cookie := cookies[0]
	if cookie.MaxAge != -1 {
		t.Errorf("MaxAge: want -1, got %d", cookie.MaxAge)
	}
	if cookie.Value != "" {
		t.Error("Value должен быть пустым")
	}
}

// TestCredentialsVerify проверяет сравнение учётных данных.
func TestCredentialsVerify(t *testing.T) {
	creds := Credentials{Username: "admin", Password: "s3cret"}

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"верные данные", "admin", "s3cret", true},
		{"неверный пароль", "admin", "wrong", false},
		{"неверный логин", "root", "s3cret", false},
		{"пустые данные", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creds.Verify(tt.username, tt.password); got != tt.want {
				t.Errorf("Verify(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}
