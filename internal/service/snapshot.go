package service

import (
	"encoding/json"

	"roomcraft/internal/domain"
)

// encodeSessions serializa la coleccion como arreglo JSON; los time.Time salen en RFC 3339.
func encodeSessions(sessions []domain.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return json.Marshal(sessions)
}

// decodeSessions reconstruye la coleccion. Un Result adjunto a un mensaje de usuario se descarta.
func decodeSessions(data []byte) ([]domain.Session, error) {
	var sessions []domain.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, err
	}
	for i := range sessions {
		for j := range sessions[i].Messages {
			if sessions[i].Messages[j].Role == domain.RoleUser {
				sessions[i].Messages[j].Result = nil
			}
		}
	}
	return sessions, nil
}
