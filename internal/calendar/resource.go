package calendar

// Resource is a schedulable row such as a room, a person or a machine.
type Resource struct {
	ID    string
	Title string
}

// ResourceIndex returns the row of the resource with the given id, or -1.
// The first match wins when ids repeat.
func ResourceIndex(resources []Resource, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range resources {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func indexResources(resources []Resource) map[string]int {
	idx := make(map[string]int, len(resources))
	for i, r := range resources {
		if _, seen := idx[r.ID]; !seen {
			idx[r.ID] = i
		}
	}
	return idx
}
