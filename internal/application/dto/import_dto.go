package dto

// ImportRejectionDTO rechazo de una fila del archivo de importación.
type ImportRejectionDTO struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResultResponse resultado de una importación masiva. Cada fila del
// archivo aparece exactamente una vez: o contribuye a un cliente aceptado o
// tiene una entrada en Rejections. Committed indica si los aceptados ya
// fueron agregados a la población (false en el preview).
type ImportResultResponse struct {
	Accepted   []CustomerResponse   `json:"accepted"`
	Rejections []ImportRejectionDTO `json:"rejections"`
	Committed  bool                 `json:"committed"`
}
