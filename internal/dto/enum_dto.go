package dto

type RecursosEnumResponse struct {
	Resources       []string `json:"Resources"`
	Views           []string `json:"Views"`
	DefinitiveViews []string `json:"DefinitiveViews"`
}

type MetodosEnumResponse struct {
	Methods          []string `json:"Methods"`
	View             []string `json:"View"`
	DefinitiveMethod []string `json:"DefinitiveMethod"`
}
