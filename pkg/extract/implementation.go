package extract

// ImplementationMeasure is a national measure transposing the act.
type ImplementationMeasure struct {
	Identifier string `json:"identifier"`
	Country    string `json:"country"`
	Status     string `json:"status"`
}

const (
	unknownCountry    = "Unknown"
	statusImplemented = "Implemented"
)

func extractImplementation(fieldScope *fieldScope) []ImplementationMeasure {
	measures := []ImplementationMeasure{}
	collection := fieldScope.mapping.Implementation
	if collection == nil {
		return measures
	}

	for _, container := range fieldScope.nodes("implementation", collection.Container) {
		identifier := itemText(container, collection.Item(ItemIdentifier))
		if !identifier.IsPresent() {
			continue
		}
		country := itemText(container, collection.Item(ItemCountry))
		measures = append(measures, ImplementationMeasure{
			Identifier: identifier.Value(),
			Country:    country.Or(Present(unknownCountry)).Value(),
			Status:     statusImplemented,
		})
	}
	return measures
}
