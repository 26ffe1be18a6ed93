/*
Package operation implements the file-level work of qtyconfirm.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+
	|   Inject    |
	| (Transform) |
	+------+------+

🎯 Purpose:
- Reads each input through the status Store
- Runs the text injector over the whole document
- Writes the result (unless dry run) and records what changed
- Reports every file on the console

🔄 Flow:
1. InjectOperation handles one source and one destination
2. BatchOperation expands doublestar globs under a root, drops ignored
   paths, and runs one InjectOperation per file on a bounded errgroup
3. OperationRunner executes either, synchronously or in a goroutine that
   honours context cancellation

The injector itself is pure; every side effect lives here.
*/
package operation
