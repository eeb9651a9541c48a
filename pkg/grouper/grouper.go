// Package grouper 按摘要划分文件记录。
//
// 组内顺序即输入顺序，第一个成员为原件；不做任何二次排序（路径、修改时间等）。
// 摘要相同即视为内容相同，不再逐字节比较。
package grouper

import "github.com/moyu-x/dupmover/internal"

// Group 返回至少包含两个成员的重复组，组的顺序为其首个成员出现的顺序
func Group(records []internal.FileRecord) []internal.DuplicateGroup {
	index := make(map[string]int)
	var groups []internal.DuplicateGroup

	for _, r := range records {
		i, ok := index[r.Digest]
		if !ok {
			index[r.Digest] = len(groups)
			groups = append(groups, internal.DuplicateGroup{Digest: r.Digest, Members: []internal.FileRecord{r}})
			continue
		}
		groups[i].Members = append(groups[i].Members, r)
	}

	dups := groups[:0]
	for _, g := range groups {
		if len(g.Members) > 1 {
			dups = append(dups, g)
		}
	}
	return dups
}

// Classify 返回每个路径在分组后的状态
func Classify(records []internal.FileRecord) map[string]internal.FileState {
	states := make(map[string]internal.FileState, len(records))
	for _, r := range records {
		states[r.Path] = internal.StateUnique
	}
	for _, g := range Group(records) {
		states[g.Original().Path] = internal.StateOriginal
		for _, d := range g.Duplicates() {
			states[d.Path] = internal.StateDuplicatePending
		}
	}
	return states
}
