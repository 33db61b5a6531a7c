package program

import "sort"

func sortedSocketNames(sockets map[string]*Node) []string {
	names := make([]string, 0, len(sockets))
	for name := range sockets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
