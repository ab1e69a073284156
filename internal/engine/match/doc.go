// Package match resolves bracket and quote pairs around a cursor
// position.
//
// # Brackets
//
// BracketMatcher handles (), [], and {}. Matching is depth-counted
// across the whole buffer, so nested pairs resolve to the pair at the
// cursor's depth.
//
// # Quotes
//
// QuoteMatcher handles double quotes, single quotes, and backticks.
// A quote has no distinct opening and closing character, so the
// matcher decides direction by parity: an occurrence preceded by an
// even number of unescaped quotes on its line opens a string, an odd
// one closes it. Quote matching never crosses line boundaries.
//
// # Typing Assists
//
// Both matchers answer the questions the edit coordinator asks while
// the user types: whether a typed opener should insert its
// counterpart, whether a typed closer should step over an existing
// one, and whether backspace between a pair should remove both sides.
// The assists honor the editor configuration toggles; pair lookup
// itself is always available.
package match
