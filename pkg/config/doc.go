/*
Package config manages configuration loading and validation for urlmigrate.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  File   |   |   Env   |   |  Flags  |
	| y/h/j   |   |  .env   |   |  cobra  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Builds one explicit Config at process start
- Layers defaults, an optional file, the environment and flags
- Fails fast on missing settings before any stage does work

🔄 Flow:
1. Load reads the config file (YAML, HCL or JSON) over Default
2. LoadDotEnv + ApplyEnv overlay INPUT_FILE and the R2_* variables
3. Normalize fills blanked settings
4. Validate checks the requirements of the stage about to run

🔍 Example:

	cfg, err := config.Load(ctx, "urlmigrate.yaml")
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.Normalize()
	if err := cfg.Validate(config.RequireDocument, config.RequireDestination); err != nil {
		if errors.Is(err, config.ErrMissingSetting) {
			// nothing has been touched yet
		}
		return err
	}
*/
package config
