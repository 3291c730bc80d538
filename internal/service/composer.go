package service

import (
	"fmt"
	"strings"
)

// QuickPrompts son atajos que se envian tal cual por Send.
var QuickPrompts = []string{
	"Change style",
	"Budget alternatives",
	"Color options",
	"Lighting suggestions",
}

// ColorScheme es una paleta predefinida del panel de preferencias.
type ColorScheme struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// DesignStyle es un estilo predefinido del panel de preferencias.
type DesignStyle struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var ColorSchemes = []ColorScheme{
	{Name: "Neutral Elegance", Colors: []string{"White", "Beige", "Light Gray", "Cream"}},
	{Name: "Warm & Cozy", Colors: []string{"Terracotta", "Warm Brown", "Golden Yellow", "Burnt Orange"}},
	{Name: "Cool & Calm", Colors: []string{"Soft Blue", "Sage Green", "Light Gray", "White"}},
	{Name: "Bold & Modern", Colors: []string{"Charcoal Gray", "Deep Navy", "Mustard Yellow", "White"}},
	{Name: "Earthy & Natural", Colors: []string{"Olive Green", "Tan", "Clay", "Ivory"}},
	{Name: "Pastel Dreams", Colors: []string{"Blush Pink", "Mint Green", "Lavender", "Cream"}},
}

var DesignStyles = []DesignStyle{
	{Name: "Modern Minimalist", Description: "Clean lines, neutral colors, functional furniture"},
	{Name: "Scandinavian", Description: "Light woods, white walls, cozy textiles, natural light"},
	{Name: "Industrial", Description: "Exposed brick, metal accents, reclaimed wood, concrete"},
	{Name: "Bohemian", Description: "Eclectic mix, vibrant colors, plants, textured fabrics"},
	{Name: "Mid-Century Modern", Description: "Iconic furniture, bold colors, geometric patterns"},
	{Name: "Farmhouse", Description: "Rustic wood, vintage pieces, soft neutrals, shiplap"},
	{Name: "Contemporary", Description: "Current trends, mixed materials, bold accents"},
	{Name: "Traditional", Description: "Classic furniture, rich colors, ornate details"},
	{Name: "Coastal", Description: "Light blues, whites, natural textures, airy feel"},
	{Name: "Art Deco", Description: "Luxurious materials, geometric patterns, bold colors"},
}

// ComposePreferences arma el texto de entrada a partir de las selecciones del panel.
// Nombres desconocidos se ignoran; sin nada que componer devuelve false.
func ComposePreferences(schemeName, styleName string) (string, bool) {
	var b strings.Builder
	if scheme, ok := findColorScheme(schemeName); ok {
		fmt.Fprintf(&b, "I prefer a %s color scheme with colors like %s. ", scheme.Name, strings.Join(scheme.Colors, ", "))
	}
	if style, ok := findDesignStyle(styleName); ok {
		fmt.Fprintf(&b, "I want a %s style design. ", style.Name)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// QuickPrompt devuelve el atajo en la posicion i (base 0).
func QuickPrompt(i int) (string, bool) {
	if i < 0 || i >= len(QuickPrompts) {
		return "", false
	}
	return QuickPrompts[i], true
}

func findColorScheme(name string) (ColorScheme, bool) {
	for _, s := range ColorSchemes {
		if s.Name == name {
			return s, true
		}
	}
	return ColorScheme{}, false
}

func findDesignStyle(name string) (DesignStyle, bool) {
	for _, s := range DesignStyles {
		if s.Name == name {
			return s, true
		}
	}
	return DesignStyle{}, false
}
