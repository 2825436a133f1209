package vis

// Positions are fixed and physics is off: the page shows exactly the arranged
// scene.
var html = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        * {
            margin: 0;
        }
        body {
            background: %s;
        }
        #mynetwork {
            width: 100vw;
            height: 100vh;
        }
    </style>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script type="text/javascript"
      src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
  </head>
  <body>
    <div id="mynetwork"></div>
    <script type="text/javascript">
const scene = %s;

var container = document.getElementById("mynetwork");

var data = {
  nodes: new vis.DataSet(scene.nodes),
  edges: new vis.DataSet(scene.edges),
};

var options = {
  physics: {
    enabled: false,
  },
  nodes: {
    shape: "box",
    font: { face: "Inter", size: 24 },
    widthConstraint: { maximum: 250 },
  },
  edges: {
    arrows: { to: { enabled: true, type: "triangle" } },
    smooth: { type: "curvedCW", roundness: 0.15 },
  },
};
var network = new vis.Network(container, data, options);
network.fit();
    </script>
  </body>
</html>`
