package shell

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

const legacySyntaxError = "The syntax of the command is incorrect."

const legacyDirListing = ` Volume in drive C is Windows
 Volume Serial Number is A1B2-C3D4

 Directory of C:\Users\Student

12/22/2024  02:30 PM    <DIR>          .
12/22/2024  02:30 PM    <DIR>          ..
12/22/2024  10:15 AM    <DIR>          Desktop
12/22/2024  09:45 AM    <DIR>          Documents
12/22/2024  11:20 AM    <DIR>          Downloads
12/22/2024  08:30 AM    <DIR>          Pictures
12/21/2024  04:45 PM             2,048 notes.txt
12/20/2024  12:30 PM            15,872 report.xlsx
               2 File(s)         17,920 bytes
               6 Dir(s)  25,789,456,384 bytes free`

const legacyHelpIndex = `For more information on a specific command, type HELP command-name
ATTRIB         Displays or changes file attributes.
CD             Displays the name of or changes the current directory.
CHDIR          Displays the name of or changes the current directory.
CLS            Clears the screen.
COPY           Copies one or more files to another location.
DATE           Displays or sets the date.
DEL            Deletes one or more files.
DIR            Displays a list of files and subdirectories in a directory.
ECHO           Displays messages, or turns command echoing on or off.
EXIT           Quits the CMD.EXE program (command interpreter).
HELP           Provides Help information for Windows commands.
MD             Creates a directory.
MKDIR          Creates a directory.
MOVE           Moves one or more files from one directory to another directory.
RD             Removes a directory.
RMDIR          Removes a directory.
TIME           Displays or sets the system time.
TYPE           Displays the contents of a text file.
VER            Displays the Windows version.`

const legacyIPConfig = `
Windows IP Configuration

Ethernet adapter Ethernet:

   Media State . . . . . . . . . . . : Media disconnected
   Connection-specific DNS Suffix  . :

Wireless LAN adapter Wi-Fi:

   Connection-specific DNS Suffix  . :
   Link-local IPv6 Address . . . . . : fe80::1234:5678:9abc:def0%12
   IPv4 Address. . . . . . . . . . . : 192.168.1.100
   Subnet Mask . . . . . . . . . . . : 255.255.255.0
   Default Gateway . . . . . . . . . : 192.168.1.1
`

const legacyTaskList = `
Image Name                     PID Session Name        Session#    Mem Usage
========================= ======== ================ =========== ============
System Idle Process              0 Services                   0          8 K
System                           4 Services                   0      2,124 K
smss.exe                       532 Services                   0      1,024 K
csrss.exe                      612 Services                   0      4,096 K
winlogon.exe                   668 Services                   0      3,072 K
services.exe                   716 Services                   0      5,120 K
lsass.exe                      728 Services                   0      8,192 K
svchost.exe                    912 Services                   0     15,360 K
explorer.exe                  1234 Console                    1     35,840 K
notepad.exe                   2468 Console                    1      8,192 K
`

const legacyNetstat = `
Active Connections

  Proto  Local Address          Foreign Address        State
  TCP    127.0.0.1:445          0.0.0.0:0              LISTENING
  TCP    192.168.1.100:139      0.0.0.0:0              LISTENING
  TCP    192.168.1.100:51234    example.com:443        ESTABLISHED
  TCP    192.168.1.100:51678    example.org:80         TIME_WAIT
  UDP    127.0.0.1:53           *:*
  UDP    192.168.1.100:137      *:*
`

const legacySet = `ALLUSERSPROFILE=C:\ProgramData
APPDATA=C:\Users\Student\AppData\Roaming
COMPUTERNAME=DESKTOP-TUTOR
HOMEDRIVE=C:
HOMEPATH=\Users\Student
OS=Windows_NT
PATH=C:\Windows\system32;C:\Windows;C:\Windows\System32\Wbem
PROMPT=$P$G
TEMP=C:\Users\Student\AppData\Local\Temp
USERNAME=Student`

var legacyCatalog = newCatalog(model.Legacy, []Entry{
	{Name: "dir", Description: "Displays a list of files and subdirectories in a directory.", render: fixed(legacyDirListing)},
	{Name: "cd", Description: "Displays the name of or changes the current directory.", render: argOr(`C:\Users\Student`, func(string) string { return "" })},
	{Name: "cls", Description: "Clears the screen.", render: silent},
	{Name: "copy", Description: "Copies one or more files to another location.", render: firstArg(legacySyntaxError, func(string) string { return "        1 file(s) copied." })},
	{Name: "del", Description: "Deletes one or more files.", render: silentWithArg(legacySyntaxError)},
	{Name: "type", Description: "Displays the contents of a text file.", render: firstArg(legacySyntaxError, func(arg string) string {
		return fmt.Sprintf("Contents of %s:\nThis is a sample file.\nIt holds simulated text for the course.", arg)
	})},
	{Name: "echo", Description: "Displays messages, or turns command echoing on or off.", render: echoArgs},
	{Name: "mkdir", Description: "Creates a directory.", render: silentWithArg(legacySyntaxError)},
	{Name: "md", Description: "Creates a directory.", render: silentWithArg(legacySyntaxError)},
	{Name: "rmdir", Description: "Removes a directory.", render: silentWithArg(legacySyntaxError)},
	{Name: "rd", Description: "Removes a directory.", render: silentWithArg(legacySyntaxError)},
	{Name: "move", Description: "Moves files and renames files and directories.", render: firstArg(legacySyntaxError, func(string) string { return "        1 file(s) moved." })},
	{Name: "help", Description: "Provides Help information for Windows commands.", render: argOr(legacyHelpIndex, func(arg string) string {
		return fmt.Sprintf("Help for the %s command...", strings.ToUpper(arg))
	})},
	{Name: "ver", Description: "Displays the Windows version.", render: fixed("Microsoft Windows [Version 10.0.19045.3693]")},
	{Name: "date", Description: "Displays or sets the date.", render: clock("Mon 01/02/2006", func(s string) string { return "The current date is: " + s })},
	{Name: "time", Description: "Displays or sets the system time.", render: clock("15:04:05.00", func(s string) string { return "The current time is: " + s })},
	{Name: "ipconfig", Description: "Displays the Windows IP configuration.", render: fixed(legacyIPConfig)},
	{Name: "tasklist", Description: "Displays the tasks that are currently running.", render: fixed(legacyTaskList)},
	{Name: "taskkill", Description: "Terminates a running process or application.", render: firstArg(`ERROR: Invalid syntax. Type "TASKKILL /?" for usage.`, func(arg string) string {
		return fmt.Sprintf("SUCCESS: Sent termination signal to the process %s.", arg)
	})},
	{Name: "netstat", Description: "Displays network connections, routing tables and interfaces.", render: fixed(legacyNetstat)},
	{Name: "ping", Description: "Sends ICMP echo requests to a network host.", render: firstArg("IP address must be specified.", func(arg string) string {
		return fmt.Sprintf(`
Pinging %[1]s [93.184.216.34] with 32 bytes of data:
Reply from 93.184.216.34: bytes=32 time=15ms TTL=56
Reply from 93.184.216.34: bytes=32 time=12ms TTL=56
Reply from 93.184.216.34: bytes=32 time=18ms TTL=56
Reply from 93.184.216.34: bytes=32 time=14ms TTL=56

Ping statistics for 93.184.216.34:
    Packets: Sent = 4, Received = 4, Lost = 0 (0%% loss),
`, arg)
	})},
	{Name: "find", Description: "Searches for a text string in a file or files.", render: firstArg("FIND: Parameter format not correct", func(arg string) string {
		return fmt.Sprintf("\n---------- NOTES.TXT\nline containing %s", arg)
	})},
	{Name: "findstr", Description: "Searches for strings in files.", render: firstArg("FINDSTR: Bad command line", func(arg string) string {
		return fmt.Sprintf("notes.txt:line containing %s", arg)
	})},
	{Name: "xcopy", Description: "Copies files and directory trees.", render: firstArg("Invalid number of parameters", func(string) string { return "1 File(s) copied" })},
	{Name: "attrib", Description: "Displays or changes file attributes.", render: fixed(`A                    C:\Users\Student\notes.txt
A                    C:\Users\Student\report.xlsx`)},
	{Name: "chkdsk", Description: "Checks a disk and displays a status report.", render: fixed(`The type of the file system is NTFS.
Volume label is Windows.

WARNING!  /F parameter not specified.
Running CHKDSK in read-only mode.

Windows has scanned the file system and found no problems.
No further action is required.`)},
	{Name: "set", Description: "Displays, sets, or removes environment variables.", render: argOr(legacySet, func(string) string { return "" })},
	{Name: "path", Description: "Displays or sets a search path for executable files.", render: fixed(`PATH=C:\Windows\system32;C:\Windows;C:\Windows\System32\Wbem`)},
	{Name: "start", Description: "Starts a separate window to run a specified program or command."},
	{Name: "call", Description: "Calls one batch program from another."},
	{Name: "exit", Description: "Quits the CMD.EXE program (command interpreter).", render: silent},
})
