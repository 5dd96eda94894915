/*
Package mapping holds the source → destination record that doubles as the transfer checkpoint.

	+-------------+      Append       +-----------+      Save       +----------------+
	| Transfer    | ----------------> |    Log    | --------------> |  urls-map.csv  |
	| Engine      | <---------------- | (entries) | <-------------- | (atomic write) |
	+-------------+     Completed     +-----------+      Load       +----------------+

🎯 Purpose:
- Keeps one Entry per processed source URL, in processing order
- Models outcomes as Success, DownloadFailed or UploadFailed
- Writes the "Failed to download" / "Failed to upload" strings only at the CSV boundary

🔄 Flow:
1. Load reads a prior partial run, if any
2. The engine asks Completed before touching a URL
3. Append + Save after every URL, the full file rewritten each time

⚠️ Notes:
- One writer per mapping file
- Malformed rows are skipped and counted in Log.Skipped
*/
package mapping
