package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one tracked user from the roster file.
type Entry struct {
	Name   string
	ID     string
	Status string
}

// Roster is the set of users the report is filtered to, in display order.
type Roster struct {
	Entries []Entry
	byName  map[string]Entry
}

// Load reads the roster CSV (Name, ID, Status columns). A leading @ on a
// name is stripped before matching against fetched usernames; rows with a
// blank name are skipped. An unreadable or empty roster is an error.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("roster %s: no user rows", path)
	}

	nameCol, idCol, statusCol := columnIndexes(rows[0])
	if nameCol < 0 {
		return nil, fmt.Errorf("roster %s: no Name column", path)
	}

	ros := &Roster{byName: make(map[string]Entry)}
	for _, row := range rows[1:] {
		if nameCol >= len(row) {
			continue
		}
		name := strings.TrimPrefix(strings.TrimSpace(row[nameCol]), "@")
		if name == "" {
			continue
		}
		e := Entry{Name: name}
		if idCol >= 0 && idCol < len(row) {
			e.ID = strings.TrimSpace(row[idCol])
		}
		if statusCol >= 0 && statusCol < len(row) {
			e.Status = strings.TrimSpace(row[statusCol])
		}
		if _, dup := ros.byName[name]; !dup {
			ros.Entries = append(ros.Entries, e)
		}
		ros.byName[name] = e
	}
	if len(ros.Entries) == 0 {
		return nil, fmt.Errorf("roster %s: no usable rows", path)
	}

	sort.SliceStable(ros.Entries, func(i, j int) bool {
		return lessID(ros.Entries[i].ID, ros.Entries[j].ID)
	})
	return ros, nil
}

// Lookup returns the roster entry for a fetched username.
func (r *Roster) Lookup(name string) (Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// columnIndexes locates the roster columns by header name. The status
// column also matches the account-status header the original export uses.
func columnIndexes(header []string) (name, id, status int) {
	name, id, status = -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			name = i
		case "id":
			id = i
		case "status", "账号状态":
			status = i
		}
	}
	return
}

// lessID orders numerically when both IDs parse as integers, lexically
// otherwise.
func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
