// Package gitctx resolves the commit a report describes and reads repository
// metadata by shelling out to git.
//
// For a pull request the report commit is the merge base of the base and head
// commits, so the heading names the point the branch was compared from. When
// git cannot compute it (shallow clones, unknown objects) the base commit is
// used instead. Outside a pull request it is GITHUB_SHA, or HEAD.
package gitctx
