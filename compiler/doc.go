/*

Process of compilation

ILOC Text ->
	scan ->
Tokens (token) ->
	parse ->
Operations (ir) ->
	format ->
Listing

Scan and parse never stop on an error.
Both report to one diag.Log per file,
and the file is rejected if it has any diagnostics.

*/
package compiler
