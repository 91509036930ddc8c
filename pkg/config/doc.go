/*
Package config loads the copy jobs viewcopy runs.

	            +-------------+
	            |   Config    |
	            |  (copies)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Parses job files in YAML, HCL or JSON, picked by extension
- Rejects unknown fields and unknown operation types at load time
- Builds copier jobs through the operation registry
- Runs field checks (view names, patterns, replace strings) for `viewcopy validate`

🔄 Flow:
1. Reads configuration from file
2. Parses format-specific syntax
3. Validates and fills in defaults
4. Turns each copy into a copier.Job

📝 Operations are written flat: a `type` key naming the registered
operation plus that operation's parameters. In HCL the type is the block
label and placeholders are escaped as `$${NAME}`.

🔍 Example:

	cfg, err := config.Load(ctx, "viewcopy.yaml")
	if err != nil {
		return err
	}
	jobs, err := cfg.Jobs()
	if err != nil {
		return err
	}
	results, err := copier.New(reg).RunAll(ctx, jobs, env, cfg.Parallel)
*/
package config
