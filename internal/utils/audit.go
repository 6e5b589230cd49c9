package utils

import (
	"log"
	"time"

	"vitrine_back_end/internal/database"

	"github.com/gocql/gocql"
)

// Actions auditées sur le panier
const (
	ActionCartAdd      = "cart_add"
	ActionCartIncrease = "cart_increase"
	ActionCartDecrease = "cart_decrease"
	ActionCartDelete   = "cart_delete"
)

// LogCartEvent enregistre une mutation de panier dans la table cart_events
// (append-only, ScyllaDB). Best-effort : un échec d'audit est loggé mais
// ne remet jamais en cause la mutation déjà confirmée.
func LogCartEvent(ownerID, action, productID string, quantity int) {
	session, err := database.GetEventsSession()
	if err != nil {
		log.Printf("⚠️ Audit panier indisponible: %v", err)
		return
	}

	err = session.Query(`INSERT INTO cart_events (event_id, owner_id, action, product_id, quantity, created_at)
	                     VALUES (?, ?, ?, ?, ?, ?)`,
		gocql.TimeUUID(), ownerID, action, productID, quantity, time.Now()).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur enregistrement événement panier: %v", err)
	}
}
