// Package feed pushes order changes to the owning seller over WebSocket.
// Each seller subscribes to a topic named after their user id; order events
// from the services layer are fanned out to that topic only.
package feed

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/salesdesk/app/models"
	"github.com/shashiranjanraj/salesdesk/app/services"
	"github.com/shashiranjanraj/salesdesk/pkg/auth"
	"github.com/shashiranjanraj/salesdesk/pkg/event"
	"github.com/shashiranjanraj/salesdesk/pkg/logger"
	"github.com/shashiranjanraj/salesdesk/pkg/response"
	"github.com/shashiranjanraj/salesdesk/pkg/ws"
)

// Message is the frame written to subscribers.
type Message struct {
	Event string        `json:"event"`
	Order *models.Order `json:"order"`
}

// Feed bridges the event bus and the WebSocket hub.
type Feed struct {
	hub    *ws.Hub
	issuer *auth.Issuer
}

// New returns a Feed publishing on hub and authenticating with issuer.
func New(hub *ws.Hub, issuer *auth.Issuer) *Feed {
	return &Feed{hub: hub, issuer: issuer}
}

// Listen subscribes the feed to every order event on bus.
func (f *Feed) Listen(bus *event.Bus) {
	bus.Listen(f.deliver,
		services.EventOrderCreated,
		services.EventOrderUpdated,
		services.EventOrderRemoved,
	)
}

func (f *Feed) deliver(e event.Event) {
	o, ok := e.Payload.(*models.Order)
	if !ok || o == nil {
		return
	}
	data, err := json.Marshal(Message{Event: e.Name, Order: o})
	if err != nil {
		logger.Warn("feed: encode failed", "event", e.Name, "error", err)
		return
	}
	f.hub.Publish(o.Seller.Hex(), data)
}

// Handler upgrades an authenticated request to a subscription on the
// caller's topic. Browsers cannot set headers on a WebSocket handshake, so
// the token may also come in the "token" query parameter.
func (f *Feed) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		if claims == nil {
			if tok := r.URL.Query().Get("token"); tok != "" {
				claims, _ = f.issuer.Verify(tok)
			}
		}
		if claims == nil {
			response.Unauthorized(w)
			return
		}
		ws.Upgrade(w, r, f.hub, claims.UserID)
	})
}
