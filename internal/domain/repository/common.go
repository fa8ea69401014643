package repository

// ListParams filtros comunes de los listados paginados.
type ListParams struct {
	Search string // subcadena buscada con ILIKE en columnas de texto
	Limit  int
	Offset int
}
