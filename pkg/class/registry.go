package class

import (
	"fmt"
	"log/slog"

	werrors "github.com/go-drift/widgetkit/pkg/errors"
)

// Registry holds every registered set and class. A registry must be
// initialized with [Registry.Init] before classes can be registered.
type Registry struct {
	initialized bool
	sets        map[string]*Set
	root        *Class
	core        *Set

	// Report enables debug logging of registrations.
	Report bool
}

// NewRegistry returns an uninitialized registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Init initializes the registry and registers the root class. Calling Init
// on an initialized registry is a no-op.
func (r *Registry) Init() error {
	if r.initialized {
		return nil
	}
	r.sets = make(map[string]*Set)
	r.initialized = true
	core, err := r.RegisterSet("core", "toolkit core classes")
	if err != nil {
		r.initialized = false
		return err
	}
	r.core = core
	r.root = &Class{
		name:        RootName,
		description: "root of every class",
		set:         core,
		funcs: Funcs{
			Construct: func(Object) (Object, error) { return &Root{}, nil },
		},
	}
	core.classes[RootName] = r.root
	return nil
}

// Shutdown discards every set and class. Objects constructed before the
// shutdown keep their class descriptors.
func (r *Registry) Shutdown() {
	r.initialized = false
	r.sets = nil
	r.root = nil
	r.core = nil
}

// Initialized reports whether the registry accepts registrations.
func (r *Registry) Initialized() bool { return r.initialized }

// Root returns the root class, or nil before Init.
func (r *Registry) Root() *Class { return r.root }

// RegisterSet creates a named class set.
func (r *Registry) RegisterSet(name, description string) (*Set, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty set name", ErrInvalidClass)
	}
	if _, exists := r.sets[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSet, name)
	}
	s := &Set{Name: name, Description: description, classes: make(map[string]*Class)}
	r.sets[name] = s
	return s, nil
}

// RegisterClass registers a class in set. A nil parent makes the root class
// the parent. The class's Init function runs before RegisterClass returns;
// if it fails the class is not registered.
func (r *Registry) RegisterClass(name, description string, set *Set, parent *Class, funcs Funcs) (*Class, error) {
	if !r.initialized {
		return nil, ErrNotInitialized
	}
	if name == "" || set == nil || funcs.Construct == nil {
		return nil, fmt.Errorf("%w: %q needs a name, a set and a constructor", ErrInvalidClass, name)
	}
	if r.sets[set.Name] != set {
		return nil, fmt.Errorf("%w: set %q is not registered here", ErrInvalidClass, set.Name)
	}
	if _, exists := set.classes[name]; exists {
		return nil, fmt.Errorf("%w: %s.%s", ErrDuplicateClass, set.Name, name)
	}
	if parent == nil {
		parent = r.root
	}
	c := &Class{
		name:        name,
		description: description,
		set:         set,
		parent:      parent,
		funcs:       funcs,
		depth:       parent.depth + 1,
	}
	if funcs.Init != nil {
		if err := funcs.Init(c); err != nil {
			return nil, werrors.New("class.RegisterClass", werrors.KindInit, err).WithClass(name)
		}
	}
	set.classes[name] = c
	if r.Report {
		werrors.Logger().Debug("class registered",
			slog.String("class", c.String()),
			slog.String("parent", parent.String()),
			slog.Int("depth", c.depth))
	}
	return c, nil
}

// Lookup returns the class registered under name in the named set.
func (r *Registry) Lookup(set, name string) *Class {
	s, ok := r.sets[set]
	if !ok {
		return nil
	}
	return s.classes[name]
}

// New constructs an instance of c. The parent chain is constructed first,
// root outwards; each constructor receives the finished super-object. If a
// constructor fails, everything built so far is freed.
func (r *Registry) New(c *Class) (Object, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil class", ErrInvalidClass)
	}
	var super Object
	if c.parent != nil {
		var err error
		super, err = r.New(c.parent)
		if err != nil {
			return nil, err
		}
	}
	obj, err := c.funcs.Construct(super)
	if err == nil && obj == nil {
		err = fmt.Errorf("%w: constructor returned nil", ErrInvalidClass)
	}
	if err != nil {
		if super != nil {
			_ = r.Free(super)
		}
		return nil, werrors.New("class.New", werrors.KindAlloc, err).WithClass(c.name)
	}
	inst := obj.instance()
	inst.class = c
	inst.super = super
	return obj, nil
}

// Free destroys obj: its own class's Destroy runs first, then the
// super-object is freed. Freeing an already freed object returns ErrFreed
// and touches nothing.
func (r *Registry) Free(obj Object) error {
	if obj == nil {
		return nil
	}
	inst := obj.instance()
	if inst.freed {
		return ErrFreed
	}
	inst.freed = true
	if inst.class != nil && inst.class.funcs.Destroy != nil {
		inst.class.funcs.Destroy(obj)
	}
	if inst.super != nil {
		return r.Free(inst.super)
	}
	return nil
}

// Copy returns a deep copy of obj built with each class's Copy function,
// parent layers first.
func (r *Registry) Copy(obj Object) (Object, error) {
	if obj == nil {
		return nil, fmt.Errorf("%w: nil object", ErrInvalidClass)
	}
	if obj.Freed() {
		return nil, ErrFreed
	}
	c := obj.Class()
	if c.funcs.Copy == nil && c.parent != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCopy, c)
	}
	var super Object
	if src := obj.Super(); src != nil {
		var err error
		super, err = r.Copy(src)
		if err != nil {
			return nil, err
		}
	}
	dst, err := c.funcs.Construct(super)
	if err == nil && c.funcs.Copy != nil {
		err = c.funcs.Copy(dst, obj)
	}
	if err != nil {
		if dst != nil {
			// The partially copied layer never finished construction, so
			// only its super chain is released.
			dst.instance().freed = true
		}
		if super != nil {
			_ = r.Free(super)
		}
		return nil, werrors.New("class.Copy", werrors.KindAlloc, err).WithClass(c.name)
	}
	inst := dst.instance()
	inst.class = c
	inst.super = super
	return dst, nil
}

// IsInstanceOf reports whether obj was constructed as c or as a descendant
// of c. It returns false for a nil object or class.
func IsInstanceOf(obj Object, c *Class) bool {
	if obj == nil || c == nil || obj.Class() == nil {
		return false
	}
	return obj.Class().Is(c)
}

// ClassObject returns the layer of obj that was constructed for class c:
// obj itself when c is obj's class, otherwise the matching super-object.
func ClassObject(obj Object, c *Class) (Object, error) {
	if !IsInstanceOf(obj, c) {
		name := "<nil>"
		if c != nil {
			name = c.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrNotInstance, name)
	}
	if obj.Freed() {
		return nil, ErrFreed
	}
	for o := obj; o != nil; o = o.Super() {
		if o.Class() == c {
			return o, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotInstance, c)
}

// As returns the layer of obj constructed for class c as a T.
func As[T Object](obj Object, c *Class) (T, error) {
	var zero T
	o, err := ClassObject(obj, c)
	if err != nil {
		return zero, err
	}
	t, ok := o.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s layer is %T", ErrNotInstance, c, o)
	}
	return t, nil
}
