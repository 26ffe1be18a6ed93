/*
Package config loads the optional rule file for qtyconfirm.

	            +-------------+
	            |   Config    |
	            |  (Overrides)|
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |   HCL   |  |  JSON   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Overrides the shape of the generated confirm button
- Selects which increment buttons are matched
- Supplies globs, ignore patterns and parallelism for batch runs

🔄 Flow:
1. Picks a parser from the file extension
2. Decodes the file, rejecting unknown fields
3. Merges the overrides onto text.DefaultRule
4. Validates the resulting rule and batch patterns

An empty file, or no file at all, yields text.DefaultRule unchanged.

🔍 Example (YAML):

	confirm:
	  label: OK
	  indent: "  "
	batch:
	  globs: ["pages/*.html", "shop/*.html"]
	  ignore: ["pages/legacy/**"]
	  jobs: 4

🔍 Example (HCL):

	confirm {
	  label  = "OK"
	  indent = "${indent}  "
	}
*/
package config
