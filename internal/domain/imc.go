package domain

import "time"

const (
	CategoriaBajoPeso  = "Bajo peso"
	CategoriaNormal    = "Normal"
	CategoriaSobrepeso = "Sobrepeso"
	CategoriaObeso     = "Obeso"
)

type ImcRecord struct {
	ID        int64
	Peso      float64
	Altura    float64
	Imc       float64
	Categoria string
	Fecha     time.Time
	UserID    int64
}

// ImcView is the response shape for a single computed record.
type ImcView struct {
	Peso      float64   `json:"peso"`
	Altura    float64   `json:"altura"`
	Imc       float64   `json:"imc"`
	Categoria string    `json:"categoria"`
	Fecha     time.Time `json:"fecha"`
}

type MesImc struct {
	Mes string  `json:"mes"`
	Imc float64 `json:"imc"`
}

type MesPeso struct {
	Mes  string  `json:"mes"`
	Peso float64 `json:"peso"`
}

// Estadisticas holds the monthly aggregates, both lists in calendar month
// order. A user with no history gets no Estadisticas at all (the endpoint
// serializes an empty object instead).
type Estadisticas struct {
	ImcMensual    []MesImc  `json:"imcMensual"`
	VariacionPeso []MesPeso `json:"variacionPeso"`
}
