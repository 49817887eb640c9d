package generator

import (
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/cppgen/pkg/cpp"
	"github.com/pseudomuto/cppgen/pkg/project"
	"github.com/pseudomuto/cppgen/pkg/template"
	"github.com/pseudomuto/cppgen/pkg/utils"
)

// converter turns descriptor records into cpp values, expanding function
// bodies and code templates along the way.
type converter struct {
	engine *template.Engine
}

func (c *converter) functions(fns []*project.Function) ([]cpp.Function, error) {
	out := make([]cpp.Function, 0, len(fns))
	for _, fn := range fns {
		converted, err := c.function(fn)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}

	return out, nil
}

func (c *converter) function(fn *project.Function) (cpp.Function, error) {
	body, err := c.engine.Expand(fn.Body)
	if err != nil {
		return cpp.Function{}, errors.Wrapf(err, "failed to expand body of %s", fn.Name)
	}

	// function templates form a prologue ahead of the body
	vars := map[string]string{"function_name": fn.Name}
	var prologue []string
	for _, name := range fn.Templates {
		code, err := c.engine.ApplyTemplate(name, vars)
		if err != nil {
			return cpp.Function{}, errors.Wrapf(err, "failed to apply template %s to %s", name, fn.Name)
		}
		prologue = append(prologue, utils.SplitLines(code)...)
	}

	if len(prologue) > 0 {
		body = strings.Join(prologue, "\n") + "\n" + body
	}

	var comment string
	if c.engine.HasTemplate(FunctionCommentTemplate) {
		if comment, err = c.engine.ApplyTemplate(FunctionCommentTemplate, vars); err != nil {
			return cpp.Function{}, errors.Wrapf(err, "failed to apply %s", FunctionCommentTemplate)
		}
	}

	params := make([]cpp.Parameter, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = cpp.Parameter{Type: cpp.Type{Name: p.Type}, Name: p.Name, Default: p.Default}
	}

	return cpp.Function{
		Name:        fn.Name,
		ReturnType:  fn.ReturnType,
		Parameters:  params,
		Body:        body,
		Access:      fn.Access,
		Virtual:     fn.Virtual,
		PureVirtual: fn.PureVirtual,
		Const:       fn.Const,
		Static:      fn.Static,
		Comment:     comment,
	}, nil
}

func (c *converter) classes(classes []*project.Class) ([]cpp.Class, error) {
	out := make([]cpp.Class, 0, len(classes))
	for _, cls := range classes {
		converted, err := c.class(cls)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}

	return out, nil
}

func (c *converter) class(cls *project.Class) (cpp.Class, error) {
	functions, err := c.functions(cls.Functions)
	if err != nil {
		return cpp.Class{}, errors.Wrapf(err, "failed to convert class %s", cls.Name)
	}

	members := make([]cpp.Member, len(cls.Members))
	for i, m := range cls.Members {
		members[i] = member(m)
	}

	var body []string
	vars := map[string]string{"class_name": cls.Name}
	for _, name := range cls.Templates {
		code, err := c.engine.ApplyTemplate(name, vars)
		if err != nil {
			return cpp.Class{}, errors.Wrapf(err, "failed to apply template %s to %s", name, cls.Name)
		}
		body = append(body, utils.SplitLines(code)...)
	}

	return cpp.Class{
		Name:        cls.Name,
		BaseClasses: cls.BaseClasses,
		Members:     members,
		Functions:   functions,
		Comment:     metadataComment(cls.Metadata),
		Body:        body,
	}, nil
}

func member(m *project.Member) cpp.Member {
	return cpp.Member{
		Type:        cpp.Type{Name: m.Type},
		Name:        m.Name,
		Initializer: m.Initializer,
		Access:      m.Access,
		Comment:     m.Comment,
	}
}

// metadataComment renders class metadata as "key: value" lines sorted by key.
func metadataComment(metadata map[string]string) string {
	lines := make([]string, 0, len(metadata))
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		lines = append(lines, key+": "+metadata[key])
	}

	return strings.Join(lines, "\n")
}
