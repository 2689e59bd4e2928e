package models

import "strings"

// Errors collects field-level validation messages on an entity so failed
// create/update calls can hand the record back for re-display instead of
// raising.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) FullMessages() string {
	var msgs []string
	for field, fieldMsgs := range e {
		for _, m := range fieldMsgs {
			msgs = append(msgs, field+" "+m)
		}
	}
	return strings.Join(msgs, ", ")
}
