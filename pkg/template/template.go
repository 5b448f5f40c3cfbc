package template

import (
	"reflect"

	"github.com/go-drift/skin/pkg/core"
	"github.com/go-drift/skin/pkg/errors"
)

// FrameworkTemplate is the shared base of all templates.
type FrameworkTemplate struct {
	content   core.Element
	resources core.ResourceDictionary
}

// AddChild sets the template's root. A template has a single root; later
// calls are reported and ignored.
func (t *FrameworkTemplate) AddChild(el core.Element) {
	if el == nil {
		return
	}
	if t.content != nil {
		errors.Reportf("template.AddChild", errors.KindTemplate, el.Framework().String(),
			"template already has a root")
		return
	}
	t.content = el
}

// HasContent reports whether a root was added.
func (t *FrameworkTemplate) HasContent() bool {
	return t != nil && t.content != nil
}

// SetResource adds a resource merged into every instantiated root.
func (t *FrameworkTemplate) SetResource(key string, v any) {
	if t.resources == nil {
		t.resources = make(core.ResourceDictionary)
	}
	t.resources[key] = v
}

// Resources returns the template's private dictionary.
func (t *FrameworkTemplate) Resources() core.ResourceDictionary {
	return t.resources
}

// LoadContent instantiates the template for w. It returns nil when no root
// was ever added. The result has no parent; callers attach it.
func (t *FrameworkTemplate) LoadContent(w core.Window) core.Element {
	if !t.HasContent() {
		return nil
	}
	cm := core.NewCopyManager()
	root := cm.Copy(t.content)
	f := root.Framework()
	if len(t.resources) > 0 {
		res := make(core.ResourceDictionary, len(t.resources))
		for k, v := range t.resources {
			res[k] = cm.CopyValue(v)
		}
		f.MergeResources(res)
	}
	if f.NameScope() == nil {
		core.BuildNameScope(root)
	}
	f.SetWindow(w)
	return root
}

// ControlTemplate defines the visual tree of a control.
type ControlTemplate struct {
	FrameworkTemplate
}

// NewControlTemplate returns a control template rooted at root.
func NewControlTemplate(root core.Element) *ControlTemplate {
	t := &ControlTemplate{}
	t.AddChild(root)
	return t
}

// DataTemplate presents a data item. The instantiated root gets the item
// as its data context, so bindings inside resolve against the item.
type DataTemplate struct {
	FrameworkTemplate

	// DataType, when set, limits implicit lookup to items of that type.
	DataType reflect.Type
}

// NewDataTemplate returns a data template for items of dataType (nil
// matches anything).
func NewDataTemplate(dataType reflect.Type, root core.Element) *DataTemplate {
	t := &DataTemplate{DataType: dataType}
	t.AddChild(root)
	return t
}

// Matches reports whether item can be presented by t.
func (t *DataTemplate) Matches(item any) bool {
	if t == nil {
		return false
	}
	if t.DataType == nil {
		return true
	}
	if item == nil {
		return false
	}
	return reflect.TypeOf(item) == t.DataType
}

// Instantiate loads the template and sets item as the root's context.
func (t *DataTemplate) Instantiate(w core.Window, item any) core.Element {
	if t == nil {
		return nil
	}
	root := t.LoadContent(w)
	if root != nil {
		root.Framework().Context.Set(item)
	}
	return root
}

// ItemsPanelTemplate creates the panel hosting generated containers.
type ItemsPanelTemplate struct {
	FrameworkTemplate
}

// NewItemsPanelTemplate returns a panel template rooted at panel.
func NewItemsPanelTemplate(panel core.Element) *ItemsPanelTemplate {
	t := &ItemsPanelTemplate{}
	t.AddChild(panel)
	return t
}

// DataTemplateKey is the resource key under which an implicit data
// template for type t is stored.
func DataTemplateKey(t reflect.Type) string {
	return "DataTemplate:" + t.String()
}

// FindDataTemplate looks for an implicit template for item's type in the
// resources of el and its ancestors.
func FindDataTemplate(el core.Element, item any) *DataTemplate {
	if el == nil || item == nil {
		return nil
	}
	tpl, ok := core.FindResourceAs[*DataTemplate](el, DataTemplateKey(reflect.TypeOf(item)))
	if !ok || !tpl.Matches(item) {
		return nil
	}
	return tpl
}
