// override.go — подмена HTTP-метода для браузерных форм.
// HTML-формы умеют только GET и POST; параметр _method в query
// превращает POST в PUT или DELETE до маршрутизации.
package middleware

import "net/http"

// Имя query-параметра подмены метода.
const MethodOverrideParam = "_method"

// MethodOverride возвращает middleware подмены метода.
// Подменяются только POST → PUT и POST → DELETE. Параметр читается
// из query (?_method=PUT), тело запроса не трогается.
func MethodOverride() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				switch r.URL.Query().Get(MethodOverrideParam) {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
