package store

import (
	"math"
	"strings"
	"time"

	"organizer/internal/model"
	"organizer/internal/ordering"

	"github.com/bytedance/sonic"
)

// decodeRecords parses b as a JSON array of objects. ok is false when b is
// not an array at all. Non-object elements are dropped and reported through
// changed.
func decodeRecords(b []byte) (recs []map[string]any, ok, changed bool) {
	var raw any
	if err := sonic.ConfigStd.Unmarshal(b, &raw); err != nil {
		return nil, false, false
	}
	arr, isArr := raw.([]any)
	if !isArr {
		return nil, false, false
	}
	recs = make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		m, isObj := el.(map[string]any)
		if !isObj {
			changed = true
			continue
		}
		recs = append(recs, m)
	}
	return recs, true, changed
}

func stringField(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// orderField returns the record's order, or pos when it is missing or not
// an integral number.
func orderField(m map[string]any, pos int) (int, bool) {
	f, ok := m["order"].(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return pos, false
	}
	return int(f), true
}

// groupField reads groupId, falling back to the legacy projectId field.
// Anything other than a string or null becomes unassigned.
func groupField(m map[string]any) (model.GroupRef, bool) {
	v, present := m["groupId"]
	if !present {
		legacy, ok := m["projectId"]
		if !ok {
			return model.Unassigned(), false
		}
		g, _ := groupValue(legacy)
		return g, false
	}
	return groupValue(v)
}

func groupValue(v any) (model.GroupRef, bool) {
	switch x := v.(type) {
	case nil:
		return model.Unassigned(), true
	case string:
		trimmed := strings.TrimSpace(x)
		return model.Group(trimmed), trimmed != "" && trimmed == x
	default:
		return model.Unassigned(), false
	}
}

// completedField accepts RFC3339 strings and epoch milliseconds.
func completedField(m map[string]any) (*time.Time, bool) {
	switch x := m["completedAt"].(type) {
	case nil:
		_, present := m["completedAt"]
		return nil, present
	case string:
		t, err := time.Parse(time.RFC3339Nano, x)
		if err != nil {
			return nil, false
		}
		t = t.UTC()
		return &t, true
	case float64:
		t := time.UnixMilli(int64(x)).UTC()
		return &t, false
	default:
		return nil, false
	}
}

// idField returns a unique id for the record, generating one when it is
// blank or already taken.
func idField(m map[string]any, prefix string, seen map[string]bool) (string, bool) {
	id, ok := stringField(m, "id")
	id = strings.TrimSpace(id)
	if ok && id != "" && !seen[id] {
		seen[id] = true
		return id, true
	}
	id = NewID(prefix, func(s string) bool { return seen[s] })
	seen[id] = true
	return id, false
}

// DecodeTasks normalizes a persisted task array. changed reports whether the
// normalized form differs from the payload and should be written back.
func DecodeTasks(b []byte) (tasks []model.Task, changed bool) {
	recs, ok, changed := decodeRecords(b)
	if !ok {
		return []model.Task{}, false
	}
	seen := map[string]bool{}
	tasks = make([]model.Task, 0, len(recs))
	for i, m := range recs {
		var t model.Task
		var clean bool
		var fieldsClean = true

		t.ID, clean = idField(m, TaskIDPrefix, seen)
		fieldsClean = fieldsClean && clean
		t.Title, clean = stringField(m, "title")
		fieldsClean = fieldsClean && clean
		t.GroupID, clean = groupField(m)
		fieldsClean = fieldsClean && clean
		t.Order, clean = orderField(m, i)
		fieldsClean = fieldsClean && clean
		t.CompletedAt, clean = completedField(m)
		fieldsClean = fieldsClean && clean

		if !fieldsClean || len(m) != 5 {
			changed = true
		}
		tasks = append(tasks, t)
	}

	sorted := ordering.SortByOrder(tasks)
	if !ordering.IsDense(sorted) {
		changed = true
	} else {
		for i := range sorted {
			if sorted[i].ID != tasks[i].ID {
				changed = true
				break
			}
		}
	}
	return ordering.Densify(sorted), changed
}

// DecodeProjects normalizes a persisted project array.
func DecodeProjects(b []byte) (projects []model.Project, changed bool) {
	recs, ok, changed := decodeRecords(b)
	if !ok {
		return []model.Project{}, false
	}
	seen := map[string]bool{}
	projects = make([]model.Project, 0, len(recs))
	for i, m := range recs {
		var p model.Project
		var clean bool
		var fieldsClean = true

		p.ID, clean = idField(m, ProjectIDPrefix, seen)
		fieldsClean = fieldsClean && clean
		p.Name, clean = stringField(m, "name")
		fieldsClean = fieldsClean && clean
		p.Color, clean = stringField(m, "color")
		fieldsClean = fieldsClean && clean
		p.Order, clean = orderField(m, i)
		fieldsClean = fieldsClean && clean

		if !fieldsClean || len(m) != 4 {
			changed = true
		}
		projects = append(projects, p)
	}

	sorted := ordering.SortProjectsByOrder(projects)
	if !ordering.ProjectsDense(sorted) {
		changed = true
	} else {
		for i := range sorted {
			if sorted[i].ID != projects[i].ID {
				changed = true
				break
			}
		}
	}
	return ordering.DensifyProjects(sorted), changed
}

// DecodeFilter reads the persisted filter token, stored bare (active). A
// JSON-quoted token ("active") is accepted and reported through changed, as
// are unknown tokens, which fall back to all.
func DecodeFilter(b []byte) (model.StatusFilter, bool) {
	s := strings.TrimSpace(string(b))
	quoted := strings.HasPrefix(s, `"`)
	if quoted {
		if err := sonic.ConfigStd.Unmarshal([]byte(s), &s); err != nil {
			return model.FilterAll, true
		}
	}
	f := model.ParseStatusFilter(s)
	return f, quoted || string(f) != s || len(s) != len(b)
}

func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return sonic.ConfigStd.Marshal(tasks)
}

func EncodeProjects(projects []model.Project) ([]byte, error) {
	if projects == nil {
		projects = []model.Project{}
	}
	return sonic.ConfigStd.Marshal(projects)
}

// EncodeFilter writes the bare filter token.
func EncodeFilter(f model.StatusFilter) []byte {
	return []byte(model.ParseStatusFilter(string(f)))
}
