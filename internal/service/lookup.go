// Package service maps well-known (port, protocol) pairs to
// conventional service names.
//
// The table is static and embedded rather than read from the OS
// service database (/etc/services, getservbyport), because a live
// registry is not a portable assumption across target environments.
// The lookup is purely a presentation-time annotation for open ports;
// it never influences classification.
package service

import "sort"

// Unknown is the sentinel returned at render time for an open port
// whose service is not in the table.
const Unknown = "desconocido"

// key identifies one table entry.
type key struct {
	port     int
	protocol string
}

// names is the embedded well-known services table. Entries follow the
// conventional IANA assignments for the ports a small scanner is most
// likely to hit.
var names = map[key]string{
	{20, "tcp"}:    "ftp-data",
	{21, "tcp"}:    "ftp",
	{22, "tcp"}:    "ssh",
	{23, "tcp"}:    "telnet",
	{25, "tcp"}:    "smtp",
	{53, "tcp"}:    "domain",
	{67, "udp"}:    "bootps",
	{68, "udp"}:    "bootpc",
	{69, "udp"}:    "tftp",
	{80, "tcp"}:    "http",
	{110, "tcp"}:   "pop3",
	{111, "tcp"}:   "sunrpc",
	{119, "tcp"}:   "nntp",
	{123, "udp"}:   "ntp",
	{135, "tcp"}:   "epmap",
	{139, "tcp"}:   "netbios-ssn",
	{143, "tcp"}:   "imap",
	{161, "udp"}:   "snmp",
	{179, "tcp"}:   "bgp",
	{389, "tcp"}:   "ldap",
	{443, "tcp"}:   "https",
	{445, "tcp"}:   "microsoft-ds",
	{465, "tcp"}:   "smtps",
	{514, "udp"}:   "syslog",
	{587, "tcp"}:   "submission",
	{631, "tcp"}:   "ipp",
	{636, "tcp"}:   "ldaps",
	{873, "tcp"}:   "rsync",
	{993, "tcp"}:   "imaps",
	{995, "tcp"}:   "pop3s",
	{1080, "tcp"}:  "socks",
	{1433, "tcp"}:  "ms-sql-s",
	{1521, "tcp"}:  "oracle",
	{1723, "tcp"}:  "pptp",
	{2049, "tcp"}:  "nfs",
	{3128, "tcp"}:  "squid-http",
	{3306, "tcp"}:  "mysql",
	{3389, "tcp"}:  "ms-wbt-server",
	{5060, "tcp"}:  "sip",
	{5432, "tcp"}:  "postgresql",
	{5672, "tcp"}:  "amqp",
	{5900, "tcp"}:  "vnc",
	{6379, "tcp"}:  "redis",
	{8080, "tcp"}:  "http-proxy",
	{8443, "tcp"}:  "https-alt",
	{9000, "tcp"}:  "cslistener",
	{9200, "tcp"}:  "elasticsearch",
	{11211, "tcp"}: "memcached",
	{27017, "tcp"}: "mongodb",
}

// Lookup returns the conventional service name for (port, protocol)
// and whether the pair is in the table. Callers rendering open ports
// substitute Unknown when ok is false.
func Lookup(port int, protocol string) (string, bool) {
	name, ok := names[key{port: port, protocol: protocol}]
	return name, ok
}

// Entry is one row of the embedded table, exposed for the
// "escaner services" listing.
type Entry struct {
	Port     int
	Protocol string
	Name     string
}

// All returns every table entry sorted by port, then protocol. The
// slice is freshly allocated on each call.
func All() []Entry {
	entries := make([]Entry, 0, len(names))
	for k, name := range names {
		entries = append(entries, Entry{Port: k.port, Protocol: k.protocol, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Port != entries[j].Port {
			return entries[i].Port < entries[j].Port
		}
		return entries[i].Protocol < entries[j].Protocol
	})
	return entries
}
