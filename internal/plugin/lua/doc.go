// Package lua hosts user remap scripts for termkeys.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are open, file loading is removed and
// require resolves only those libraries and the termkeys module.
//
// # The termkeys module
//
//	local tk = require("termkeys")
//	tk.encode("<C-F5>")              -- "\27[15;5~"
//	tk.encode("Home", {cursor_app = true})
//	tk.transform("\27[1", "C-S", "A") -- "\27[1;6A"
//	tk.termcap("kN")                  -- "PageDown"
//	tk.parse("<A-Up>")                -- {key = "Up", alt = true, ...}
//	tk.log("info", "loaded")
//
// # Remap scripts
//
// A remap script defines a global function remap(ev). It is called for
// every key event before the built-in rules; returning a string writes
// that string, returning nil defers to the built-in rules.
//
//	function remap(ev)
//	    if ev.key == "VolumeUp" and ev.ctrl then
//	        return "\27[5~"
//	    end
//	end
package lua
