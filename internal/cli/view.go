package cli

import (
	"errors"
	"fmt"
	"strings"

	"organizer/internal/model"
	"organizer/internal/organizer"
	"organizer/internal/ordering"
	"organizer/internal/views"

	"github.com/spf13/cobra"
)

// viewFlags describe the view a command acts on: a status filter and an
// optional project scope. The visible task set of a reorder is derived from
// them exactly the way list and board derive what they print.
type viewFlags struct {
	filter     string
	project    string
	unassigned bool
}

func (v *viewFlags) addFilter(cmd *cobra.Command) {
	cmd.Flags().StringVar(&v.filter, "filter", "", "Status filter (all|active|completed; default: saved filter)")
}

func (v *viewFlags) addScope(cmd *cobra.Command, what string) {
	cmd.Flags().StringVar(&v.project, "project", "", what+" project id")
	cmd.Flags().BoolVar(&v.unassigned, "unassigned", false, what+" tasks without a project")
}

func (v viewFlags) status(o *organizer.Organizer) (model.StatusFilter, error) {
	if strings.TrimSpace(v.filter) == "" {
		return o.Filter(), nil
	}
	if !model.ValidStatusFilter(v.filter) {
		return "", fmt.Errorf("invalid --filter %q (want all|active|completed)", v.filter)
	}
	return model.ParseStatusFilter(v.filter), nil
}

// scope returns the group named by --project/--unassigned. ok is false when
// neither is set.
func (v viewFlags) scope(snap organizer.Snapshot) (ref model.GroupRef, ok bool, err error) {
	p := strings.TrimSpace(v.project)
	switch {
	case p != "" && v.unassigned:
		return model.GroupRef{}, false, errors.New("--project and --unassigned are mutually exclusive")
	case v.unassigned:
		return model.Unassigned(), true, nil
	case p != "":
		if _, found := ordering.FindProject(snap.Projects, p); !found {
			return model.GroupRef{}, false, errNotFound("project", p)
		}
		return model.Group(p), true, nil
	}
	return model.GroupRef{}, false, nil
}

// visible returns the tasks the view shows, in sequence order.
func (v viewFlags) visible(o *organizer.Organizer, snap organizer.Snapshot) ([]model.Task, error) {
	mode, err := v.status(o)
	if err != nil {
		return nil, err
	}
	tasks := views.FilterByStatus(snap.Tasks, mode)
	ref, scoped, err := v.scope(snap)
	if err != nil {
		return nil, err
	}
	if scoped {
		tasks = views.InGroup(tasks, snap.Projects, ref)
	}
	return tasks, nil
}
