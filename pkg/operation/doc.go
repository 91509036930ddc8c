/*
Package operation implements the rewrite steps applied to a view configuration while it is copied.

	+-------------+      +-------------+      +-------------+
	|  Document   | ---> |   Runner    | ---> |  Document   |
	|  (source)   |      | op1..opN    |      |  (copied)   |
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     |  Operation  |
	                     | applicable? |
	                     |  perform    |
	                     +-------------+

🎯 Purpose:
- Defines the Operation contract (ID, IsApplicable, Perform)
- Ships three operation types: SetDescription, SetRegex and Replace
- Keeps a registry so other packages can add operation types
- Runs an ordered list of operations with fail-fast semantics

🔄 Flow:
1. Runner copies the source document
2. Each operation is checked against the view kind
3. Each operation gets a private copy of the current document
4. The first failure discards everything and stops the run

⚡ Guarantees:
- The input document is never modified
- No document is returned after a failure
- Every failure writes at least one line to the diagnostics logger

🤝 Interfaces:
- document.Document: the tree operations rewrite
- expand.Env: variables available to operations that opt into expansion
- log.Logger: diagnostics stream, taken from the context

🔍 Example:

	ops := []operation.Operation{
		operation.NewReplace(operation.String("template-"), false, operation.String("${BRANCH}-"), true),
		operation.NewSetRegex(operation.String("${BRANCH}-.*")),
	}
	doc, err := operation.Run(ctx, source, view.KindList, env, ops)
*/
package operation
