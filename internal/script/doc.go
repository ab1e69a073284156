// Package script hosts user-supplied Lua rules that refine the
// editor's automatic indentation.
//
// A rule script defines one global function:
//
//	function indent(line, base, tab_width)
//	    if string.match(line, "^%s*case ") then
//	        return base - tab_width
//	    end
//	    return nil
//	end
//
// line is the text of the line being split, base is the width the
// built-in rules chose, and tab_width comes from the configuration.
// Returning a number overrides the width; returning nil keeps the
// built-in choice.
//
// # Sandboxing
//
// Rule scripts run with only the base, table, string, and math
// libraries open. The io, os, debug, and package libraries stay
// closed, and the code loaders (dofile, loadfile, load) are removed.
// A rule computes indent widths and has no business on the host
// system.
package script
