package people

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/arlett/prodboard/internal/domain/project"
)

// Person is one directory entry carrying every role the name holds
// across the project set.
type Person struct {
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	Role  string   `json:"role"`
}

// Directory unions designer and editor names across projects. A name
// appearing in both sets carries both roles. Output is ordered with a
// locale-aware collator for the person picker.
func Directory(projects []project.Project) []Person {
	type roleSet struct {
		designer bool
		editor   bool
	}

	seen := map[string]*roleSet{}
	add := func(name string) *roleSet {
		rs := seen[name]
		if rs == nil {
			rs = &roleSet{}
			seen[name] = rs
		}
		return rs
	}

	for _, p := range projects {
		for _, name := range p.Designers {
			add(name).designer = true
		}
		for _, name := range p.Editors {
			add(name).editor = true
		}
	}

	out := make([]Person, 0, len(seen))
	for name, rs := range seen {
		var roles []string
		if rs.designer {
			roles = append(roles, project.RoleDesigner)
		}
		if rs.editor {
			roles = append(roles, project.RoleEditor)
		}
		out = append(out, Person{Name: name, Roles: roles, Role: strings.Join(roles, "/")})
	}

	c := collate.New(language.Und, collate.Loose)
	sort.Slice(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
