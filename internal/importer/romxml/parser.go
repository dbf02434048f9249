// Package romxml reads ROM-style area XML exports.
//
// The expected document shape is:
//
//	<area name="...">
//	  <rooms>
//	    <node name="1234">
//	      <name>{WThe Bridge{x</name>
//	      <sector>inside</sector>
//	      <exits>
//	        <node name="north"><target>1235</target><key>0</key></node>
//	      </exits>
//	      <extraExits>
//	        <node name="ladder"><target>1240</target></node>
//	      </extraExits>
//	    </node>
//	  </rooms>
//	</area>
package romxml

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/cory-johannsen/mudmap/internal/area"
)

// Parse decodes one area document. file is recorded as the area's File and
// names the area when the document carries no name attribute.
//
// Up and down exits are moved from the exit list to the extra exits, ahead of
// the exits listed under extraExits.
//
// Precondition: data must be a well-formed XML document.
// Postcondition: Returns a valid area, or a non-nil error.
func Parse(data []byte, file string) (*area.Area, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	root := doc.SelectElement("area")
	if root == nil {
		return nil, fmt.Errorf("parsing %s: missing <area> element", file)
	}

	a := &area.Area{
		Name: root.SelectAttrValue("name", ""),
		File: filepath.ToSlash(file),
	}
	if a.Name == "" {
		a.Name = baseName(file)
	}

	rooms := root.SelectElement("rooms")
	if rooms == nil {
		return nil, fmt.Errorf("parsing %s: missing <rooms> element", file)
	}
	for _, node := range rooms.SelectElements("node") {
		r, err := parseRoom(node)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		a.Rooms = append(a.Rooms, r)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	return a, nil
}

func parseRoom(node *etree.Element) (*area.Room, error) {
	raw := node.SelectAttrValue("name", "")
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("room id %q: %w", raw, err)
	}
	r := &area.Room{
		ID:     area.RoomID(id),
		Name:   area.StripMarkup(childText(node, "name")),
		Sector: childText(node, "sector"),
	}

	exits, err := parseExits(node.SelectElement("exits"))
	if err != nil {
		return nil, fmt.Errorf("room %d: %w", id, err)
	}
	var vertical []area.Exit
	for _, e := range exits {
		if e.Direction.IsVertical() {
			vertical = append(vertical, e)
			continue
		}
		r.Exits = append(r.Exits, e)
	}
	r.AddExtraExits(vertical...)

	extra, err := parseExits(node.SelectElement("extraExits"))
	if err != nil {
		return nil, fmt.Errorf("room %d: %w", id, err)
	}
	r.AddExtraExits(extra...)
	return r, nil
}

func parseExits(list *etree.Element) ([]area.Exit, error) {
	if list == nil {
		return nil, nil
	}
	var exits []area.Exit
	for _, node := range list.SelectElements("node") {
		dir := strings.ToLower(strings.TrimSpace(node.SelectAttrValue("name", "")))
		raw := childText(node, "target")
		target, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("exit %q target %q: %w", dir, raw, err)
		}
		exits = append(exits, area.Exit{
			Direction: area.Direction(dir),
			Target:    area.RoomID(target),
			Key:       childText(node, "key"),
		})
	}
	return exits, nil
}

func childText(e *etree.Element, tag string) string {
	c := e.SelectElement(tag)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

// baseName strips the directory and the .xml and .are suffixes from file.
func baseName(file string) string {
	name := filepath.Base(file)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.TrimSuffix(name, ".are")
}
