/*
Package status reports what happens to each URL while a transfer runs.

	            +-------------+
	            |   Reporter  |
	            |  (Manager)  |
	            +------+------+
	                   |
	      +------------+-----------+
	      |                        |
	+-----+-----+            +-----+-----+
	|  Console  |            |  zerolog  |
	|  (pterm)  |            |  (ctx)    |
	+-----------+            +-----------+

🎯 Purpose:
- Tracks one URLStatus per processed source URL
- Prints an aligned line plus running progress for each
- Summarizes counts and transferred bytes at the end

🔄 Flow:
1. StartOperation with the number of URLs in the list
2. TrackURL once per URL, in processing order
3. FinishOperation prints the summary

🤝 Interfaces:
- Reporter: consumed by the transfer engine
- Formatter: turns outcomes into messages (DefaultFormatter)

⚠️ Notes:
- Failures are warnings here, not errors; the run keeps going.
- The mapping file records the failure sentinel.

🔍 Example:

	reporter := status.New(os.Stdout)
	reporter.StartOperation(ctx, "transfer", len(urls))
	reporter.TrackURL(ctx, status.URLInfo{URL: u, Key: "images/a.png", Status: status.StatusMigrated})
	reporter.FinishOperation(ctx)
*/
package status
