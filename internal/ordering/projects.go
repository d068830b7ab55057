package ordering

import "organizer/internal/model"

// ProjectUpdate holds the project fields a caller may change. Nil fields are
// left as they are. Position changes go through ReorderProjects.
type ProjectUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// FindProject returns the project with the given id.
func FindProject(projects []model.Project, id string) (model.Project, bool) {
	if i := indexOfProject(projects, id); i >= 0 {
		return projects[i], true
	}
	return model.Project{}, false
}

func indexOfProject(projects []model.Project, id string) int {
	if id == "" {
		return -1
	}
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}
	return -1
}

// ProjectIDs returns the project ids in registry order.
func ProjectIDs(projects []model.Project) []string {
	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}
	return ids
}

// AppendProject adds p at the end of the registry with Order = max+1.
func AppendProject(projects []model.Project, p model.Project) []model.Project {
	max := -1
	for _, x := range projects {
		if x.Order > max {
			max = x.Order
		}
	}
	p.Order = max + 1
	out := make([]model.Project, 0, len(projects)+1)
	out = append(out, projects...)
	return append(out, p)
}

// ReorderProjects re-densifies the registry over ids.
//
// Unknown and repeated ids are skipped. Projects that ids does not mention
// keep their current relative order after the listed ones, so a partial
// list can never drop a project.
func ReorderProjects(projects []model.Project, ids []string) ([]model.Project, bool) {
	seen := make(map[string]bool, len(projects))
	out := make([]model.Project, 0, len(projects))
	for _, id := range ids {
		i := indexOfProject(projects, id)
		if i < 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, projects[i])
	}
	for _, p := range projects {
		if !seen[p.ID] {
			out = append(out, p)
		}
	}
	out = DensifyProjects(out)

	changed := false
	for i := range out {
		if out[i].ID != projects[i].ID || out[i].Order != projects[i].Order {
			changed = true
			break
		}
	}
	if !changed {
		return projects, false
	}
	return out, true
}

// UpdateProject applies name and color changes. It reports false when the
// project does not exist or nothing changed.
func UpdateProject(projects []model.Project, id string, upd ProjectUpdate) ([]model.Project, bool) {
	i := indexOfProject(projects, id)
	if i < 0 {
		return projects, false
	}
	next := projects[i]
	if upd.Name != nil {
		next.Name = *upd.Name
	}
	if upd.Color != nil {
		next.Color = *upd.Color
	}
	if next == projects[i] {
		return projects, false
	}
	out := make([]model.Project, len(projects))
	copy(out, projects)
	out[i] = next
	return out, true
}

// RemoveProject deletes the project and re-densifies the registry. Tasks are
// not touched; see UnassignGroup.
func RemoveProject(projects []model.Project, id string) ([]model.Project, bool) {
	i := indexOfProject(projects, id)
	if i < 0 {
		return projects, false
	}
	out := make([]model.Project, 0, len(projects)-1)
	out = append(out, projects[:i]...)
	out = append(out, projects[i+1:]...)
	return DensifyProjects(out), true
}
