// Package scene holds the object hierarchy the pipeline renders: an arena of
// named objects addressed by generational handles, parent/child links with
// eager transform propagation, and the main camera selection.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vbag/internal/logger"
)

// Scene errors.
var (
	ErrNilObject     = errors.New("null pointer to object")
	ErrInvalidObject = errors.New("object payload does not match its kind")
	ErrDuplicateName = errors.New("object with same name already in scene")
	ErrNotFound      = errors.New("object not found")
	ErrStaleHandle   = errors.New("stale object handle")
	ErrChildIsParent = errors.New("child is same as parent")
	ErrChildSameName = errors.New("child has same name as parent")
	ErrCycle         = errors.New("child is an ancestor of parent")
	ErrNotChild      = errors.New("object is not a child of parent")
	ErrNotCamera     = errors.New("named object is not a camera")
	ErrScaleCamera   = errors.New("cameras cannot be scaled")
)

// Handle addresses an object in a Scene. The zero Handle is never valid, and
// a handle goes stale once its object is removed.
type Handle struct {
	index      uint32
	generation uint32
}

// Valid reports whether h was issued by a scene. It may still be stale.
func (h Handle) Valid() bool { return h.generation != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.index, h.generation)
}

type slot struct {
	obj        *Object
	generation uint32
}

// Scene is a name-keyed registry of objects plus a main camera. It is safe
// for concurrent use: mutators take the write lock and Snapshot takes the
// read lock once per frame.
type Scene struct {
	mu sync.RWMutex

	slots []slot
	free  []uint32
	names map[string]Handle
	order []string // sorted names

	mainCamera Handle

	log *zap.Logger
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		names: make(map[string]Handle),
		log:   logger.Named("scene"),
	}
}

// get resolves a handle. Callers hold the lock.
func (s *Scene) get(h Handle) (*Object, error) {
	if !h.Valid() || int(h.index) >= len(s.slots) {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	sl := s.slots[h.index]
	if sl.generation != h.generation || sl.obj == nil {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return sl.obj, nil
}

// Add registers obj as a root object and returns its handle.
func (s *Scene) Add(obj *Object) (Handle, error) {
	if obj == nil {
		return Handle{}, ErrNilObject
	}
	if !obj.valid() {
		return Handle{}, fmt.Errorf("%w: %q is %s", ErrInvalidObject, obj.Name, obj.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.names[obj.Name]; ok {
		return Handle{}, fmt.Errorf("%w: %q", ErrDuplicateName, obj.Name)
	}

	obj.parent = Handle{}
	obj.children = nil
	obj.syncCamera()

	var h Handle
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.slots[idx].obj = obj
		h = Handle{index: idx, generation: s.slots[idx].generation}
	} else {
		s.slots = append(s.slots, slot{obj: obj, generation: 1})
		h = Handle{index: uint32(len(s.slots) - 1), generation: 1}
	}

	s.names[obj.Name] = h
	i, _ := slices.BinarySearch(s.order, obj.Name)
	s.order = slices.Insert(s.order, i, obj.Name)

	s.log.Debug("object added", zap.String("name", obj.Name), zap.Stringer("kind", obj.Kind))
	return h, nil
}

// AddUnder registers obj and parents it to parent in one step.
func (s *Scene) AddUnder(parent Handle, obj *Object) (Handle, error) {
	h, err := s.Add(obj)
	if err != nil {
		return Handle{}, err
	}
	if err := s.AddChild(parent, h); err != nil {
		_ = s.Remove(obj.Name)
		return Handle{}, err
	}
	return h, nil
}

// AddChild makes child a child of parent, detaching it from any previous
// parent first. World matrices are unchanged.
func (s *Scene) AddChild(parent, child Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(parent)
	if err != nil {
		return fmt.Errorf("parent: %w", err)
	}
	c, err := s.get(child)
	if err != nil {
		return fmt.Errorf("child: %w", err)
	}
	if parent == child {
		return fmt.Errorf("%w: %q", ErrChildIsParent, p.Name)
	}
	if p.Name == c.Name {
		return fmt.Errorf("%w: %q", ErrChildSameName, p.Name)
	}
	for a := p.parent; a.Valid(); {
		if a == child {
			return fmt.Errorf("%w: %q above %q", ErrCycle, c.Name, p.Name)
		}
		ao, err := s.get(a)
		if err != nil {
			break
		}
		a = ao.parent
	}

	if c.parent == parent {
		return nil
	}
	if c.parent.Valid() {
		if old, err := s.get(c.parent); err == nil {
			old.children = removeHandle(old.children, child)
		}
	}
	c.parent = parent
	p.children = append(p.children, child)
	return nil
}

// RemoveChild detaches child from parent. The child stays in the scene as a
// root object.
func (s *Scene) RemoveChild(parent, child Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.get(parent)
	if err != nil {
		return fmt.Errorf("parent: %w", err)
	}
	c, err := s.get(child)
	if err != nil {
		return fmt.Errorf("child: %w", err)
	}
	if c.parent != parent {
		return fmt.Errorf("%w: %q under %q", ErrNotChild, c.Name, p.Name)
	}
	p.children = removeHandle(p.children, child)
	c.parent = Handle{}
	return nil
}

// Remove deletes the named object and all of its descendants. Their handles
// go stale and the main camera is cleared if it was among them.
func (s *Scene) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.names[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	root, err := s.get(h)
	if err != nil {
		return err
	}
	if root.parent.Valid() {
		if p, err := s.get(root.parent); err == nil {
			p.children = removeHandle(p.children, h)
		}
	}

	removed := 0
	s.walk(h, func(nh Handle, o *Object) {
		delete(s.names, o.Name)
		if i, found := slices.BinarySearch(s.order, o.Name); found {
			s.order = slices.Delete(s.order, i, i+1)
		}
		if nh == s.mainCamera {
			s.mainCamera = Handle{}
		}
		removed++
	})
	// Free after the walk so children lists stay readable during it.
	s.walk(h, func(nh Handle, o *Object) {
		o.parent = Handle{}
		s.slots[nh.index].obj = nil
		s.slots[nh.index].generation++
		if s.slots[nh.index].generation == 0 {
			s.slots[nh.index].generation = 1
		}
		s.free = append(s.free, nh.index)
	})

	s.log.Debug("object removed", zap.String("name", name), zap.Int("objects", removed))
	return nil
}

func removeHandle(hs []Handle, h Handle) []Handle {
	if i := slices.Index(hs, h); i >= 0 {
		return slices.Delete(hs, i, i+1)
	}
	return hs
}

// Lookup returns the handle of the named object.
func (s *Scene) Lookup(name string) (Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.names[name]
	if !ok {
		return Handle{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h, nil
}

// Object returns a shallow copy of the object at h. Payload pointers are
// shared with the scene.
func (s *Scene) Object(h Handle) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, err := s.get(h)
	if err != nil {
		return Object{}, err
	}
	cp := *o
	cp.children = slices.Clone(o.children)
	return cp, nil
}

// Update runs fn on the object at h under the write lock, for changes to
// colour or payload contents. Name and Kind are restored afterwards, and a
// camera's view matrix is rebuilt from its transform.
func (s *Scene) Update(h Handle, fn func(*Object)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.get(h)
	if err != nil {
		return err
	}
	name, kind := o.Name, o.Kind
	fn(o)
	o.Name, o.Kind = name, kind
	o.syncCamera()
	return nil
}

// Children returns the child handles of h.
func (s *Scene) Children(h Handle) ([]Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, err := s.get(h)
	if err != nil {
		return nil, err
	}
	return slices.Clone(o.children), nil
}

// Parent returns the parent of h, or the zero Handle for a root object.
func (s *Scene) Parent(h Handle) (Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, err := s.get(h)
	if err != nil {
		return Handle{}, err
	}
	return o.parent, nil
}

// Each calls fn for every object in name order until fn returns false. fn
// runs under the read lock and must not call Scene methods or modify o.
func (s *Scene) Each(fn func(h Handle, o *Object) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, name := range s.order {
		h := s.names[name]
		if !fn(h, s.slots[h.index].obj) {
			return
		}
	}
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// SetMainCamera selects the camera the pipeline renders from.
func (s *Scene) SetMainCamera(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.names[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	o, err := s.get(h)
	if err != nil {
		return err
	}
	if o.Kind != KindCamera {
		return fmt.Errorf("%w: %q is %s", ErrNotCamera, name, o.Kind)
	}
	s.mainCamera = h
	s.log.Debug("main camera set", zap.String("name", name))
	return nil
}

// MainCamera returns the main camera handle. ok is false when none is set.
func (s *Scene) MainCamera() (h Handle, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mainCamera, s.mainCamera.Valid()
}
