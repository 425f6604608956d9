package shell

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/shelltutor/internal/model"
)

const psGetProcess = `
Handles  NPM(K)    PM(K)      WS(K)     CPU(s)     Id  SI ProcessName
-------  ------    -----      -----     ------     --  -- -----------
    463      25    15,840     23,456       1.23    832   1 explorer
    234      12     8,192     12,288       0.45   1234   1 notepad
    156       8     4,096      6,144       0.12   2468   0 services
    892      45    32,768     45,056       5.67   3692   1 chrome
    345      18    12,288     18,432       2.34   4567   1 winword
`

const psGetService = `
Status   Name               DisplayName
------   ----               -----------
Running  AudioEndpointBu... Windows Audio Endpoint Builder
Stopped  BthAvctpSvc        AVCTP service
Running  BITS               Background Intelligent Transfer Ser...
Running  BrokerInfrastru... Background Tasks Infrastructure Ser...
Running  BFE                Base Filtering Engine
Running  CertPropSvc        Certificate Propagation
Running  CryptSvc           Cryptographic Services
Running  DcomLaunch         DCOM Server Process Launcher
Running  Dhcp               DHCP Client
`

const psGetChildItem = `
    Directory: C:\Users\Student

Mode                 LastWriteTime         Length Name
----                 -------------         ------ ----
d-----        12/22/2024   2:30 PM                Desktop
d-----        12/22/2024   9:45 AM                Documents
d-----        12/22/2024  11:20 AM                Downloads
d-----        12/22/2024   8:30 AM                Pictures
-a----        12/21/2024   4:45 PM           2048 notes.txt
-a----        12/20/2024  12:30 PM          15872 report.xlsx
`

const psHelpIndex = `
TOPIC
    about_PowerShell

SHORT DESCRIPTION
    PowerShell is a command-line shell and scripting language.

LONG DESCRIPTION
    PowerShell is a cross-platform automation solution made up of a
    command-line shell, a scripting language and a configuration
    management framework.

RELATED LINKS
    Online version: https://docs.microsoft.com/powershell/
    Get-Command
    Get-Member
`

const psGetCommand = `
CommandType     Name                                               Version    Source
-----------     ----                                               -------    ------
Alias           % -> ForEach-Object
Alias           ? -> Where-Object
Alias           ac -> Add-Content
Alias           cat -> Get-Content
Alias           cd -> Set-Location
Alias           chdir -> Set-Location
Alias           clear -> Clear-Host
Alias           cls -> Clear-Host
Alias           dir -> Get-ChildItem
Alias           ls -> Get-ChildItem
Function        Clear-Host
Cmdlet          Add-Content                                3.1.0.0    Microsoft.PowerShell.Management
Cmdlet          Get-ChildItem                              3.1.0.0    Microsoft.PowerShell.Management
Cmdlet          Get-Process                                3.1.0.0    Microsoft.PowerShell.Management
`

const psGetHost = `
Name             : ConsoleHost
Version          : 5.1.19041.3693
InstanceId       : 3f2b8c1e-5d4a-4b7e-9c61-2a8f0e7d4b15
UI               : System.Management.Automation.Internal.Host.InternalHostUserInterface
CurrentCulture   : en-US
CurrentUICulture : en-US
PrivateData      : Microsoft.PowerShell.ConsoleHost+ConsoleColorProxy
DebuggerEnabled  : True
IsRunspacePushed : False
Runspace         : System.Management.Automation.Runspaces.LocalRunspace
`

const psGetVariable = `
Name                           Value
----                           -----
$                              Get-Variable
?                              True
^                              Get-Variable
ConfirmPreference              High
ErrorActionPreference          Continue
HOME                           C:\Users\Student
PSVersionTable                 {PSVersion, PSEdition, BuildVersion, CLRVersion...}
PWD                            C:\Users\Student
`

const psGetModule = `
ModuleType Version    Name                                ExportedCommands
---------- -------    ----                                ----------------
Manifest   3.1.0.0    Microsoft.PowerShell.Management     {Add-Computer, Add-Content, Checkpoint-Computer...}
Manifest   3.1.0.0    Microsoft.PowerShell.Utility        {Add-Member, Add-Type, Clear-Variable, Compare-Object...}
Script     2.0.0      PSReadline                          {Get-PSReadLineKeyHandler, Set-PSReadLineOption...}
`

func psMissing(cmdlet, param string) string {
	return fmt.Sprintf("%s : Missing an argument for parameter '%s'.", cmdlet, param)
}

var structuredCatalog = newCatalog(model.Structured, []Entry{
	{Name: "get-process", Display: "Get-Process", Description: "Gets the processes that are running on the local computer.", render: fixed(psGetProcess)},
	{Name: "get-service", Display: "Get-Service", Description: "Gets the services on the computer.", render: fixed(psGetService)},
	{Name: "get-childitem", Display: "Get-ChildItem", Description: "Gets the items in one or more specified locations.", render: fixed(psGetChildItem)},
	{Name: "set-location", Display: "Set-Location", Description: "Sets the current working location to a specified location.", render: silent},
	{Name: "get-location", Display: "Get-Location", Description: "Gets information about the current working location.", render: fixed(`C:\Users\Student`)},
	{Name: "clear-host", Display: "Clear-Host", Description: "Clears the display in the host program.", render: silent},
	{Name: "write-output", Display: "Write-Output", Description: "Writes the specified objects to the pipeline.", render: echoArgs},
	{Name: "new-item", Display: "New-Item", Description: "Creates a new item.", render: firstArg(psMissing("New-Item", "Path"), func(arg string) string {
		return fmt.Sprintf(`
    Directory: C:\Users\Student

Mode                 LastWriteTime         Length Name
----                 -------------         ------ ----
-a----        12/22/2024   2:30 PM              0 %s
`, arg)
	})},
	{Name: "remove-item", Display: "Remove-Item", Description: "Deletes the specified items.", render: silentWithArg(psMissing("Remove-Item", "Path"))},
	{Name: "copy-item", Display: "Copy-Item", Description: "Copies an item from one location to another."},
	{Name: "move-item", Display: "Move-Item", Description: "Moves an item from one location to another."},
	{Name: "get-content", Display: "Get-Content", Description: "Gets the content of the item at the specified location.", render: firstArg(psMissing("Get-Content", "Path"), func(arg string) string {
		return fmt.Sprintf("Line 1 of %[1]s\nLine 2 of %[1]s\nLine 3 of %[1]s\nThis is simulated file content.\nLast line of the file.", arg)
	})},
	{Name: "set-content", Display: "Set-Content", Description: "Writes new content or replaces existing content in a file."},
	{Name: "get-help", Display: "Get-Help", Description: "Displays information about PowerShell commands and concepts.", render: argOr(psHelpIndex, func(arg string) string {
		return fmt.Sprintf(`
NAME
    %[1]s

SYNOPSIS
    Help for the %[1]s cmdlet.

DESCRIPTION
    This cmdlet performs system specific operations.

PARAMETERS
    To see the parameters, type: Get-Help %[1]s -Detailed
`, arg)
	})},
	{Name: "get-command", Display: "Get-Command", Description: "Gets all commands.", render: fixed(psGetCommand)},
	{Name: "get-member", Display: "Get-Member", Description: "Gets the properties and methods of objects."},
	{Name: "select-object", Display: "Select-Object", Description: "Selects objects or object properties."},
	{Name: "where-object", Display: "Where-Object", Description: "Selects objects from a collection based on their property values."},
	{Name: "foreach-object", Display: "ForEach-Object", Description: "Performs an operation against each item in a collection of input objects."},
	{Name: "sort-object", Display: "Sort-Object", Description: "Sorts objects by property values."},
	{Name: "group-object", Display: "Group-Object", Description: "Groups objects that contain the same value for specified properties."},
	{Name: "measure-object", Display: "Measure-Object", Description: "Calculates the numeric properties of objects."},
	{Name: "start-process", Display: "Start-Process", Description: "Starts one or more processes on the local computer."},
	{Name: "stop-process", Display: "Stop-Process", Description: "Stops one or more running processes."},
	{Name: "get-eventlog", Display: "Get-EventLog", Description: "Gets the events in an event log."},
	{Name: "test-connection", Display: "Test-Connection", Description: "Sends ICMP echo request packets to one or more computers.", render: firstArg(psMissing("Test-Connection", "ComputerName"), func(arg string) string {
		var b strings.Builder
		b.WriteString("\nSource        Destination     IPV4Address      IPV6Address                              Bytes    Time(ms)\n")
		b.WriteString("------        -----------     -----------      -----------                              -----    --------\n")
		for _, ms := range []int{15, 12, 18, 14} {
			fmt.Fprintf(&b, "DESKTOP-TUTOR %-15s 8.8.8.8                                                   32       %d\n", arg, ms)
		}
		return b.String()
	})},
	{Name: "invoke-webrequest", Display: "Invoke-WebRequest", Description: "Gets content from a web page on the internet."},
	{Name: "get-date", Display: "Get-Date", Description: "Gets the current date and time.", render: clock("Monday, January 2, 2006 3:04:05 PM", func(s string) string { return s })},
	{Name: "get-host", Display: "Get-Host", Description: "Gets an object that represents the current host program.", render: fixed(psGetHost)},
	{Name: "get-variable", Display: "Get-Variable", Description: "Gets the variables in the current console.", render: fixed(psGetVariable)},
	{Name: "set-variable", Display: "Set-Variable", Description: "Sets the value of a variable."},
	{Name: "new-variable", Display: "New-Variable", Description: "Creates a new variable."},
	{Name: "remove-variable", Display: "Remove-Variable", Description: "Deletes a variable and its value."},
	{Name: "import-module", Display: "Import-Module", Description: "Adds modules to the current session."},
	{Name: "get-module", Display: "Get-Module", Description: "Gets the modules that have been imported or that can be imported.", render: fixed(psGetModule)},
	{Name: "export-csv", Display: "Export-Csv", Description: "Converts objects into a series of comma-separated value strings."},
	{Name: "import-csv", Display: "Import-Csv", Description: "Creates table-like custom objects from the items in a CSV file."},
})
