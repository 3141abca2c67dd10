// README: Cookie session holding each visitor's filter state and position.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"cloudpicker/internal/modules/selection"
	"cloudpicker/internal/types"
)

const (
	sessionName = "cloudpicker"
	visitorKey  = "visitor"
)

// Visitor is the per-browser state. It lives in a session cookie only, so it
// ends with the browser session.
type Visitor struct {
	Filter   selection.FilterState `json:"filter"`
	Position *types.Coordinate     `json:"position,omitempty"`
}

// UserPosition returns the position the visitor reported, if any.
func (v Visitor) UserPosition() types.UserPosition {
	if v.Position == nil {
		return types.UserPosition{}
	}
	return types.Known(*v.Position)
}

// Sessions installs a cookie-backed session store. An empty secret gets a
// random one, which invalidates sessions on restart.
func Sessions(secret string) gin.HandlerFunc {
	if secret == "" {
		secret = randomSecret()
		log.Println("CLOUDPICKER_SESSION_SECRET not set; using a random per-process secret")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		// 0 = browser session cookie
		MaxAge: 0,
	})
	return sessions.Sessions(sessionName, store)
}

// LoadVisitor reads the visitor state. Missing or unreadable state yields a
// fresh Visitor.
func LoadVisitor(c *gin.Context) Visitor {
	var v Visitor
	raw, ok := sessions.Default(c).Get(visitorKey).(string)
	if !ok || raw == "" {
		return v
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("%s dropping unreadable visitor state: %v", RequestID(c), err)
		return Visitor{}
	}
	return v
}

func SaveVisitor(c *gin.Context, v Visitor) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s := sessions.Default(c)
	s.Set(visitorKey, string(data))
	return s.Save()
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
