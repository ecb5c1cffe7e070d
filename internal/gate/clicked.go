package gate

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// ClickedCookieName имя cookie с картой уже открытых ссылок.
const ClickedCookieName = "linkhub_clicked"

// clickedCookieTTL cookie живет годами: карта не имеет срока действия
// и сбрасывается только очисткой хранилища браузера.
const clickedCookieTTL = 10 * 365 * 24 * time.Hour

// ClickedMap это карта "URL ссылки -> шлюз уже показан". Хранится на
// стороне клиента, сервер ее не зеркалирует.
type ClickedMap map[string]bool

// Seen сообщает, был ли шлюз уже показан для URL.
func (m ClickedMap) Seen(url string) bool {
	return m[url]
}

// Mark отмечает URL как прошедший шлюз. Повторная отметка ничего
// не меняет: true для URL никогда не сбрасывается.
func (m ClickedMap) Mark(url string) {
	m[url] = true
}

// LoadClicked читает карту из cookie запроса. Отсутствующая или
// испорченная cookie дает пустую карту, не ошибку.
func LoadClicked(r *http.Request) ClickedMap {
	clicked := ClickedMap{}

	cookie, err := r.Cookie(ClickedCookieName)
	if err != nil {
		return clicked
	}

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return clicked
	}

	if err := json.Unmarshal(raw, &clicked); err != nil {
		return ClickedMap{}
	}
	return clicked
}

// SaveClicked записывает карту в cookie ответа.
func SaveClicked(w http.ResponseWriter, clicked ClickedMap) {
	raw, err := json.Marshal(clicked)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ClickedCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		Expires:  time.Now().Add(clickedCookieTTL),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
