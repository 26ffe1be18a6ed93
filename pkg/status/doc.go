/*
Package status handles file I/O and status tracking for qtyconfirm.

	            +-------------+
	            |   Manager   |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Logs   |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads source documents in full
- Writes destination documents atomically (temp file + rename), so a failed
  run never leaves a half-written output
- Classifies each write as new, modified or unchanged by checksum
- Reports per-file status and batch progress through zerolog

Relative paths resolve against the manager's base dir. A manager created
with an empty base dir resolves them against the working directory, which is
what the single-file command uses.
*/
package status
