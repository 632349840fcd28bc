/*
Package semtok classifies the content of Slim lines into syntax ranges for
highlighting.

Overview:
---------

	  Slim Text
	      |
	      v
	+------------+
	| slim.Parse |
	+------------+
	      |
	  node tree
	      |
	      v
	+----------------+        +------------------+
	| GetTokensFor*  | -----> | Encode (LSP u32) |
	+----------------+        +------------------+

Each node is tokenized on its own. Offsets are byte offsets into the node's
raw line, so a token can be located in the source without re-reading the
document.

Short circuits:
---------------

	node kind                 ranges
	---------                 ------
	comment, comment-block    one comment range, whole line
	embedded, embedded-block  one embedded range, whole line
	logic                     one logic range after the marker
	doctype                   one doctype range, whole line

Plain lines are scanned left to right, first match wins:

	#name          id
	.name          class
	[ ... ]        operator, attribute, operator
	word=value     attribute-name, attribute-value
	word           boolean-attribute | tag (offset 0 only) | text
	anything else  text / variable split at #{...} and {{...}}

Once text starts it runs to the end of the line.
*/
package semtok
