package render

import "time"

type Renderer interface {
	RenderProjectList(view ProjectListView) string
}

type ProjectListView struct {
	Items  []ProjectListItem
	Footer string
}

type ProjectListItem struct {
	Name      string
	Domain    string
	Status    string
	Current   bool
	Timestamp time.Time
}

func (v ProjectListView) IsEmpty() bool {
	return len(v.Items) == 0
}
