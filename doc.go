/*
Package droute implements a rule-driven DNS query router. Incoming queries
are routed to one of several configured upstream resolvers based on a
declarative graph of rules. There are 4 fundamental types of objects in
this library.

Matchers

Matchers are predicates over a DNS query and the response records collected
so far. A matcher can match unconditionally, by domain suffix against large
domain lists, by record type, or by the geographic location of resolved
addresses.

Actions

Actions are the effects executed on the chosen branch of a rule. An action
can do nothing, or dispatch the query to a named upstream resolver and
store its response.

Tables

A table is an immutable collection of rules keyed by tag, forming a directed
graph that is validated once at construction time: every referenced tag must
exist, tags must be unique, and no depth-first path from the start rule may
revisit a tag. Routing a query walks the graph from the rule tagged "start"
until it reaches the "end" sentinel, evaluating each rule's matcher and
executing the chosen branch's action. A validated table is immutable and can
serve any number of concurrent queries.

Upstreams

Upstreams are named external resolvers addressed by query actions. Plain DNS
over UDP and TCP, DNS-over-TLS, and DNS-over-HTTPS are supported, as well as
hybrid upstreams that race several others and take the first answer.
*/
package droute
