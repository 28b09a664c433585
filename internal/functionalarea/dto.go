package functionalarea

type SaveFunctionalAreaDTO struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d SaveFunctionalAreaDTO) ToDomain(id int64) *FunctionalArea {
	return &FunctionalArea{
		ID:          id,
		Code:        d.Code,
		Name:        d.Name,
		Description: d.Description,
	}
}

type FunctionalAreasResponse struct {
	FunctionalAreas []*FunctionalArea `json:"functional_areas"`
}
