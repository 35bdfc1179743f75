package middleware

import (
	"context"
	"net/http"

	"github.com/cgpnunez/mural/internal/session"
	"github.com/cgpnunez/mural/internal/usuario"
)

type contextKey string

const (
	ContextKeyUsuario contextKey = "usuario"
	ContextKeyToken   contextKey = "token"
)

// SessionCookie es la cookie que transporta el token opaco de sesión.
const SessionCookie = "mural_sesion"

// Sesion protege el área de administración: la presencia del registro
// persistido es el único predicado de autenticación. Ante su ausencia
// redirige a la raíz pública, nunca a un callejón sin salida.
func Sesion(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			u, err := store.Obtener(r.Context(), cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUsuario, u)
			ctx = context.WithValue(ctx, ContextKeyToken, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUsuario recupera el registro autenticado del contexto.
func GetUsuario(ctx context.Context) (usuario.Usuario, bool) {
	u, ok := ctx.Value(ContextKeyUsuario).(usuario.Usuario)
	return u, ok
}

// GetToken recupera el token de sesión del contexto.
func GetToken(ctx context.Context) string {
	val, _ := ctx.Value(ContextKeyToken).(string)
	return val
}
