package docfile

import (
	"strings"

	"github.com/cockroachdb/errors"

	"pkt.systems/starldoc"
)

// ErrNotFound reports a selection path that names no entity.
var ErrNotFound = errors.New("no such item")

// Select walks a dotted path below the document root, e.g. "Config.load".
// It returns the entity and the dotted name it should be rendered under.
// An empty path selects the root.
func (d *Document) Select(path string) (string, starldoc.Item, error) {
	if path == "" {
		return d.Name, d.Item, nil
	}
	name, cur := d.Name, d.Item
	for _, seg := range strings.Split(path, ".") {
		var next starldoc.Item
		switch v := cur.(type) {
		case *starldoc.Module:
			if mm, ok := v.Members[seg]; ok {
				next, _ = mm.(starldoc.Item)
			}
		case *starldoc.Type:
			if m, ok := v.Members[seg]; ok {
				next = m
			}
		}
		if next == nil {
			return "", nil, errors.Wrapf(ErrNotFound, "%s in %s", seg, name)
		}
		// members of a type are rendered with the type name as prefix
		if _, isType := cur.(*starldoc.Type); isType {
			name = name + "." + seg
		} else {
			name = seg
		}
		cur = next
	}
	return name, cur, nil
}
