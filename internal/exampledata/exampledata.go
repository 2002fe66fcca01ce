// Package exampledata ships the example week bundled with the service.
package exampledata

// WeekCSV is a seven-night diary in the tabular input format, matching the
// sample file from the format guide.
const WeekCSV = `date,sleep,wake,duration
Jul 09,8:14 PM,7:12 AM,10.9
Jul 08,12:18 AM,7:45 AM,7.4
Jul 07,11:54 PM,5:31 AM,5.6
Jul 06,1:00 AM,6:49 AM,5.8
Jul 05,1:01 AM,9:58 AM,8.9
Jul 04,10:28 PM,6:46 AM,8.3
Jul 03,12:14 AM,7:55 AM,7.7
`
