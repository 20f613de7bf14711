// Package xmp recovers capture metadata from XMP packets embedded in
// uploaded image files.
package xmp

import (
	"bytes"
	"time"

	"github.com/beevik/etree"
)

var (
	packetStart = []byte("<x:xmpmeta")
	packetEnd   = []byte("</x:xmpmeta>")

	// Fields that can carry the capture time, in preference order
	dateFields = []string{"DateTimeOriginal", "CreateDate", "DateCreated"}

	dateLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2006:01:02 15:04:05",
	}
)

// ShotDate scans the file for an XMP packet and returns the capture time
// when one is declared. The packet is plain XML, so the scan is a byte
// search for the xmpmeta envelope followed by an XML parse.
func ShotDate(data []byte) (time.Time, bool) {
	start := bytes.Index(data, packetStart)
	if start == -1 {
		return time.Time{}, false
	}
	end := bytes.Index(data[start:], packetEnd)
	if end == -1 {
		return time.Time{}, false
	}
	packet := data[start : start+end+len(packetEnd)]

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(packet); err != nil {
		return time.Time{}, false
	}

	for _, field := range dateFields {
		if t, ok := findDate(doc.Root(), field); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// findDate looks for the field as an element or an rdf:Description
// attribute anywhere in the packet, ignoring namespace prefixes.
func findDate(root *etree.Element, field string) (time.Time, bool) {
	if root == nil {
		return time.Time{}, false
	}
	if el := root.FindElement("//" + field); el != nil {
		if t, ok := parseDate(el.Text()); ok {
			return t, ok
		}
	}
	for _, desc := range root.FindElements("//Description") {
		for _, attr := range desc.Attr {
			if attr.Key == field {
				if t, ok := parseDate(attr.Value); ok {
					return t, ok
				}
			}
		}
	}
	return time.Time{}, false
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
