// Package class implements the class registry behind every widget type.
//
// A [Class] describes one object type: its name, its parent class and the
// functions that construct, copy and destroy its instances. Objects are
// built by composition. Each object holds its parent class's instance as a
// super-object, so a Button holds an Element, which holds the root object.
// The registry constructs that chain parent first and tears it down in
// reverse order.
//
// Example:
//
//	reg := class.NewRegistry()
//	if err := reg.Init(); err != nil { ... }
//	set, _ := reg.RegisterSet("widgets", "standard widgets")
//	elem, _ := reg.RegisterClass("element", "base element", set, nil, class.Funcs{
//	    Construct: func(super class.Object) (class.Object, error) { return &Element{}, nil },
//	})
//	obj, _ := reg.New(elem)
//	defer reg.Free(obj)
package class

import "errors"

var (
	// ErrNotInitialized is returned when registering on a registry that
	// has not been initialized or has been shut down.
	ErrNotInitialized = errors.New("class: registry not initialized")
	// ErrDuplicateClass is returned when a class name is already
	// registered within a set.
	ErrDuplicateClass = errors.New("class: duplicate class name")
	// ErrDuplicateSet is returned when a set name is already registered.
	ErrDuplicateSet = errors.New("class: duplicate set name")
	// ErrNotInstance is returned when an object is not an instance of the
	// requested class.
	ErrNotInstance = errors.New("class: object is not an instance of class")
	// ErrFreed is returned when operating on an object that has already
	// been freed.
	ErrFreed = errors.New("class: object already freed")
	// ErrNoCopy is returned when copying an object whose class chain lacks
	// a copy function.
	ErrNoCopy = errors.New("class: class does not support copy")
	// ErrInvalidClass is returned for malformed class definitions.
	ErrInvalidClass = errors.New("class: invalid class definition")
)

// RootName is the name of the root class every other class descends from.
const RootName = "object"

// Funcs is a class's function table.
type Funcs struct {
	// Init runs once when the class is registered.
	Init func(c *Class) error
	// Construct builds the class's own instance around an already
	// constructed super-object (nil for the root class). Required.
	Construct func(super Object) (Object, error)
	// Copy copies the class's own state from src into dst. The
	// super-objects have already been copied. Optional.
	Copy func(dst, src Object) error
	// Destroy releases the class's own resources. The super-object is
	// still alive when Destroy runs. Optional.
	Destroy func(obj Object)
}

// Set groups related classes under a name.
type Set struct {
	Name        string
	Description string
	classes     map[string]*Class
}

// Class describes one object type. Classes are immutable after
// registration.
type Class struct {
	name        string
	description string
	set         *Set
	parent      *Class
	funcs       Funcs
	depth       int
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Description returns the human-readable description.
func (c *Class) Description() string { return c.description }

// Set returns the set the class belongs to.
func (c *Class) Set() *Set { return c.set }

// Parent returns the parent class, or nil for the root.
func (c *Class) Parent() *Class { return c.parent }

// Depth returns the number of ancestors: 0 for the root.
func (c *Class) Depth() int { return c.depth }

// Is reports whether c is other or descends from it.
func (c *Class) Is(other *Class) bool {
	for k := c; k != nil; k = k.parent {
		if k == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string {
	if c.set != nil {
		return c.set.Name + "." + c.name
	}
	return c.name
}

// Object is implemented by every registry-constructed instance. Types
// satisfy it by embedding [Instance].
type Object interface {
	// Class returns the class the object was constructed as.
	Class() *Class
	// Super returns the parent class's instance, or nil for the root.
	Super() Object
	// Freed reports whether the object has been freed.
	Freed() bool

	instance() *Instance
}

// Instance carries the class bookkeeping of one object layer. Embed it in
// every type returned by a class constructor.
type Instance struct {
	class *Class
	super Object
	freed bool
}

// Class returns the class the object was constructed as.
func (i *Instance) Class() *Class { return i.class }

// Super returns the parent class's instance.
func (i *Instance) Super() Object { return i.super }

// Freed reports whether the object has been freed.
func (i *Instance) Freed() bool { return i.freed }

func (i *Instance) instance() *Instance { return i }

// Root is the instance type of the root class.
type Root struct {
	Instance
}
