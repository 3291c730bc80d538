package domain

import "strings"

type roomKeyword struct {
	keyword string
	label   string
}

// El orden importa: gana la primera coincidencia.
var roomKeywords = []roomKeyword{
	{keyword: "living room", label: "Living Room"},
	{keyword: "bedroom", label: "Bedroom"},
	{keyword: "kitchen", label: "Kitchen"},
	{keyword: "bathroom", label: "Bathroom"},
	{keyword: "dining", label: "Dining Room"},
	{keyword: "office", label: "Office"},
}

// DetectRoomType clasifica el texto en una categoria de ambiente.
// Sin coincidencias devuelve DefaultRoomType y false.
func DetectRoomType(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rk := range roomKeywords {
		if strings.Contains(lower, rk.keyword) {
			return rk.label, true
		}
	}
	return DefaultRoomType, false
}

// DesignTitle arma el titulo que se usa tras clasificar el primer mensaje.
func DesignTitle(roomType string) string {
	return roomType + " Design"
}

// RoomTypes lista las categorias conocidas, incluida la default.
func RoomTypes() []string {
	out := make([]string, 0, len(roomKeywords)+1)
	for _, rk := range roomKeywords {
		out = append(out, rk.label)
	}
	return append(out, DefaultRoomType)
}
