package store

import (
	"organizer/internal/model"
	"organizer/internal/ordering"
)

// SampleData returns the first-run data set: three projects and five tasks.
func SampleData() ([]model.Task, []model.Project) {
	projects := ordering.DensifyProjects([]model.Project{
		{ID: "project-1", Name: "Personal", Color: "#16a34a"},
		{ID: "project-2", Name: "Work", Color: "#2563eb"},
		{ID: "project-3", Name: "Ideas", Color: "#f59e0b"},
	})
	tasks := ordering.Densify([]model.Task{
		{ID: "task-1", Title: "Plan weekly goals", GroupID: model.Group("project-1")},
		{ID: "task-2", Title: "Review pull requests", GroupID: model.Group("project-2")},
		{ID: "task-3", Title: "Draft new app concept", GroupID: model.Group("project-3")},
		{ID: "task-4", Title: "Schedule gym sessions", GroupID: model.Group("project-1")},
		{ID: "task-5", Title: "Prepare project brief", GroupID: model.Group("project-2")},
	})
	return tasks, projects
}
