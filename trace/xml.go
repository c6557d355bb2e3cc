// File: xml.go
package trace

import (
	"encoding/xml"
	"io"
)

type xmlTrace struct {
	XMLName    xml.Name   `xml:"trace"`
	SessionID  string     `xml:"sessionId,attr"`
	MakespanNs int64      `xml:"makespanNs,attr"`
	Entries    []xmlEntry `xml:"entry"`
}

type xmlEntry struct {
	Actor    string `xml:"actor,attr"`
	PE       string `xml:"pe,attr"`
	StartNs  int64  `xml:"startNs,attr"`
	FinishNs int64  `xml:"finishNs,attr"`
}

// WriteXML renders t as indented XML.
func WriteXML(w io.Writer, t *Trace) error {
	doc := xmlTrace{SessionID: t.SessionID, MakespanNs: int64(t.Makespan)}
	for _, e := range t.Entries {
		doc.Entries = append(doc.Entries, xmlEntry{
			Actor:    e.Actor,
			PE:       e.PE,
			StartNs:  int64(e.Start),
			FinishNs: int64(e.Finish),
		})
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}
