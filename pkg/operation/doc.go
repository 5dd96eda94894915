/*
Package operation wraps each migration stage as a runnable Operation.

	+-----------+     +-----------+     +-----------+
	|  extract  | --> | transfer  | --> |  replace  |
	| (+dedupe) |     | (mapping) |     | (rewrite) |
	+-----------+     +-----------+     +-----------+

🎯 Purpose:
- Give every stage the same shape so the CLI can run one alone or chain them
- Report what each stage read, wrote and counted through pkg/log

🔄 Flow:
1. A command builds one or more operations from the config
2. OperationRunner puts the console logger in the context
3. Each operation runs to completion before the next starts
4. The first error stops the chain; earlier outputs stay on disk as checkpoints

⚡ Stages:
- ExtractOperation: documents to URL list, optionally deduplicated
- DedupeOperation, CleanOperation: URL list maintenance
- TransferOperation: URL list to mapping file
- ReplaceOperation: mapping file plus documents to rewritten copies
- CompareOperation: two URL lists to two difference lists

Operations never run concurrently. The transfer stage is the only one that talks
to the network, and it owns the mapping file while it runs.
*/
package operation
