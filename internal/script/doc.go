// Package script runs Lua scripts against an editor context.
//
// Scripts see a sandboxed state: only the base, table, string and math
// libraries are opened, and dofile, loadfile, load and loadstring are
// removed. The editor is reached through the global sel module:
//
//	sel.exec(name [, arg | {arg=, count=, register=}])
//	sel.text()                 -- whole buffer
//	sel.line(n)                -- text of line n, without its newline
//	sel.line_count()
//	sel.timestamp()
//	sel.buffer_id()            -- unique id of the buffer
//	sel.complete([mode])       -- {prefix=, begin=, candidates=}; mode is
//	                           -- "prefix" or "subsequence"
//	sel.selections()           -- {{anchor={line=, col=}, cursor={...}}, ...}
//	sel.select(list)           -- replaces the selections, last one main
//	sel.main()                 -- index of the main selection
//	sel.contents()             -- selected texts
//	sel.register(name)         -- register values
//	sel.set_register(name, values)
//	sel.save_jump()            -- saves the selections, returns a jump id
//	sel.restore_jump(id)       -- selects the selections saved under id
//	sel.commands()             -- registered command names
//	sel.log(msg)
//
// Lines, columns and indexes are 1-based; columns count bytes. A script
// run through Run is one command: all its edits form a single undo frame
// and are rolled back if the script fails.
package script
